package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

const reviewColumns = `
	r.id, r.user_id, r.product_id, p.slug AS product_slug,
	r.rating, r.text, r.created_at, r.updated_at, r.deleted_at`

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// scopeClause returns the filter and ordering that make a query see only reviews in scope
func scopeClause(scope domain.Scope) (filter, order string, err error) {
	switch scope {
	case domain.ScopeActive:
		return "r.deleted_at IS NULL", "r.created_at DESC", nil
	case domain.ScopeSoftDeleted:
		return "r.deleted_at IS NOT NULL", "r.deleted_at DESC", nil
	case domain.ScopeAll:
		return "TRUE", "r.created_at DESC", nil
	default:
		return "", "", fmt.Errorf("unknown review scope %q", scope)
	}
}

// Find returns the most recent review of userID for productID visible in scope
func (r *ReviewRepository) Find(ctx context.Context, userID, productID uuid.UUID, scope domain.Scope) (*domain.Review, error) {
	filter, order, err := scopeClause(scope)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE r.user_id = $1 AND r.product_id = $2 AND ` + filter + `
		ORDER BY ` + order + `
		LIMIT 1`

	var review domain.Review
	err = r.db.GetContext(ctx, &review, query, userID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &review, nil
}

// ListByOwner returns the user's reviews visible in scope, newest first
func (r *ReviewRepository) ListByOwner(ctx context.Context, userID uuid.UUID, scope domain.Scope) ([]*domain.Review, error) {
	filter, _, err := scopeClause(scope)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE r.user_id = $1 AND ` + filter + `
		ORDER BY r.created_at DESC`

	reviews := []*domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, err
	}

	return reviews, nil
}

// Create inserts a new active review. The partial unique index on
// (user_id, product_id) rejects a second active review with ErrConflict.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (user_id, product_id, rating, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		review.UserID,
		review.ProductID,
		review.Rating,
		review.Text,
		time.Now(),
	).Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrConflict
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return err
	}

	review.DeletedAt = nil
	return nil
}

// Update applies patch to an active review and returns the stored result
func (r *ReviewRepository) Update(ctx context.Context, id uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	query := `
		UPDATE reviews r
		SET rating = COALESCE($1, r.rating),
		    text = COALESCE($2, r.text),
		    updated_at = $3
		FROM products p
		WHERE r.id = $4 AND p.id = r.product_id AND r.deleted_at IS NULL
		RETURNING ` + reviewColumns

	var review domain.Review
	err := r.db.GetContext(ctx, &review, query, patch.Rating, patch.Text, time.Now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &review, nil
}

// SoftDelete hides an active review. Hiding an already hidden or missing review is a no-op.
func (r *ReviewRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reviews
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

// HardDelete removes a review row permanently. A missing ID is a no-op.
func (r *ReviewRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}
