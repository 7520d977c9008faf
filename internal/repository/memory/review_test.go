package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

func TestReviewRepository_OneActivePerOwnerAndProduct(t *testing.T) {
	repo := NewReviewRepository()
	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()

	first := &domain.Review{UserID: userID, ProductID: productID, Rating: 4}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &domain.Review{UserID: userID, ProductID: productID, Rating: 2})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, repo.SoftDelete(ctx, first.ID))
	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	second := &domain.Review{UserID: userID, ProductID: productID, Rating: 2}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 2, repo.Len())
}

func TestReviewRepository_FindSoftDeletedReturnsMostRecent(t *testing.T) {
	repo := NewReviewRepository()
	ctx := context.Background()
	userID, productID := uuid.New(), uuid.New()

	older := &domain.Review{UserID: userID, ProductID: productID, Rating: 1}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.SoftDelete(ctx, older.ID))

	newer := &domain.Review{UserID: userID, ProductID: productID, Rating: 5}
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.SoftDelete(ctx, newer.ID))

	found, err := repo.Find(ctx, userID, productID, domain.ScopeSoftDeleted)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, found.ID)

	_, err = repo.Find(ctx, userID, productID, domain.ScopeActive)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewRepository_UpdateAndHardDelete(t *testing.T) {
	repo := NewReviewRepository()
	ctx := context.Background()

	review := &domain.Review{UserID: uuid.New(), ProductID: uuid.New(), Rating: 3, Text: "fine"}
	require.NoError(t, repo.Create(ctx, review))

	text := "better"
	updated, err := repo.Update(ctx, review.ID, domain.ReviewPatch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "better", updated.Text)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	require.NoError(t, repo.HardDelete(ctx, review.ID))
	require.NoError(t, repo.HardDelete(ctx, review.ID))

	_, err = repo.Update(ctx, review.ID, domain.ReviewPatch{Text: &text})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, repo.Len())
}

func TestReviewRepository_ListByOwnerNewestFirst(t *testing.T) {
	repo := NewReviewRepository()
	ctx := context.Background()
	userID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		review := &domain.Review{UserID: userID, ProductID: uuid.New(), Rating: i + 1}
		require.NoError(t, repo.Create(ctx, review))
		ids = append(ids, review.ID)
	}
	require.NoError(t, repo.SoftDelete(ctx, ids[1]))
	require.NoError(t, repo.Create(ctx, &domain.Review{UserID: uuid.New(), ProductID: uuid.New(), Rating: 5}))

	reviews, err := repo.ListByOwner(ctx, userID, domain.ScopeActive)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, ids[2], reviews[0].ID)
	assert.Equal(t, ids[0], reviews[1].ID)

	all, err := repo.ListByOwner(ctx, userID, domain.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
