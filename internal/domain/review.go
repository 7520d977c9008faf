package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review is a user's review of a product. A user has at most one active
// review per product; soft-deleted reviews stay in the table but no longer
// occupy that slot.
type Review struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	ProductID   uuid.UUID  `json:"product_id" db:"product_id"`
	ProductSlug string     `json:"product_slug" db:"product_slug"`
	Rating      int        `json:"rating" db:"rating"`
	Text        string     `json:"text" db:"text"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsActive reports whether the review has not been soft-deleted
func (r *Review) IsActive() bool {
	return r.DeletedAt == nil
}

// Scope selects which reviews a query can see
type Scope string

const (
	ScopeActive      Scope = "active"
	ScopeSoftDeleted Scope = "soft_deleted"
	ScopeAll         Scope = "all"
)

// ReviewPatch lists the fields of a review to change; nil fields are left as they are
type ReviewPatch struct {
	Rating *int
	Text   *string
}

// Empty reports whether the patch changes nothing
func (p ReviewPatch) Empty() bool {
	return p.Rating == nil && p.Text == nil
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Find returns the review of userID for productID visible in scope.
	// For ScopeSoftDeleted and ScopeAll the most recent match is returned.
	Find(ctx context.Context, userID, productID uuid.UUID, scope Scope) (*Review, error)

	// ListByOwner returns the user's reviews visible in scope, newest first
	ListByOwner(ctx context.Context, userID uuid.UUID, scope Scope) ([]*Review, error)

	// Create inserts a review; ErrConflict if the user already has an active review for the product
	Create(ctx context.Context, review *Review) error

	// Update applies patch to the review with the given ID
	Update(ctx context.Context, id uuid.UUID, patch ReviewPatch) (*Review, error)

	// SoftDelete hides a review; repeating it is a no-op
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// HardDelete removes a review permanently; a missing ID is a no-op
	HardDelete(ctx context.Context, id uuid.UUID) error
}
