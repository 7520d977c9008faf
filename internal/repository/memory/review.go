// Package memory holds in-process implementations of the review and product
// repositories. They honor the same invariants as the PostgreSQL ones and back
// local runs and tests that do not need a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository in memory
type ReviewRepository struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*domain.Review
	now     func() time.Time
}

// NewReviewRepository creates an empty in-memory review repository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		reviews: make(map[uuid.UUID]*domain.Review),
		now:     time.Now,
	}
}

func visible(review *domain.Review, scope domain.Scope) (bool, error) {
	switch scope {
	case domain.ScopeActive:
		return review.DeletedAt == nil, nil
	case domain.ScopeSoftDeleted:
		return review.DeletedAt != nil, nil
	case domain.ScopeAll:
		return true, nil
	default:
		return false, fmt.Errorf("unknown review scope %q", scope)
	}
}

// tick returns a strictly increasing timestamp so orderings are deterministic
func (r *ReviewRepository) tick(after time.Time) time.Time {
	now := r.now()
	if !now.After(after) {
		now = after.Add(time.Microsecond)
	}
	return now
}

func (r *ReviewRepository) latest() time.Time {
	var latest time.Time
	for _, review := range r.reviews {
		if review.UpdatedAt.After(latest) {
			latest = review.UpdatedAt
		}
	}
	return latest
}

// Find returns the most recent review of userID for productID visible in scope
func (r *ReviewRepository) Find(_ context.Context, userID, productID uuid.UUID, scope domain.Scope) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found *domain.Review
	for _, review := range r.reviews {
		if review.UserID != userID || review.ProductID != productID {
			continue
		}
		ok, err := visible(review, scope)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if found == nil || newer(review, found, scope) {
			found = review
		}
	}

	if found == nil {
		return nil, domain.ErrNotFound
	}

	copied := *found
	return &copied, nil
}

func newer(a, b *domain.Review, scope domain.Scope) bool {
	if scope == domain.ScopeSoftDeleted {
		return a.DeletedAt.After(*b.DeletedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// ListByOwner returns the user's reviews visible in scope, newest first
func (r *ReviewRepository) ListByOwner(_ context.Context, userID uuid.UUID, scope domain.Scope) ([]*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews := []*domain.Review{}
	for _, review := range r.reviews {
		if review.UserID != userID {
			continue
		}
		ok, err := visible(review, scope)
		if err != nil {
			return nil, err
		}
		if ok {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return reviews, nil
}

// Create inserts a review; ErrConflict if the user already has an active review for the product
func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID && existing.DeletedAt == nil {
			return domain.ErrConflict
		}
	}

	now := r.tick(r.latest())
	review.ID = uuid.New()
	review.CreatedAt = now
	review.UpdatedAt = now
	review.DeletedAt = nil

	stored := *review
	r.reviews[review.ID] = &stored
	return nil
}

// Update applies patch to an active review
func (r *ReviewRepository) Update(_ context.Context, id uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok || review.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}

	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.Text != nil {
		review.Text = *patch.Text
	}
	review.UpdatedAt = r.tick(r.latest())

	copied := *review
	return &copied, nil
}

// SoftDelete hides an active review; repeating it is a no-op
func (r *ReviewRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok || review.DeletedAt != nil {
		return nil
	}

	now := r.tick(r.latest())
	review.DeletedAt = &now
	review.UpdatedAt = now
	return nil
}

// HardDelete removes a review; a missing ID is a no-op
func (r *ReviewRepository) HardDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reviews, id)
	return nil
}

// Len returns the number of stored reviews, active or hidden
func (r *ReviewRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}
