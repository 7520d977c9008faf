package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account types carried in the bearer token and stored on the user
const (
	AccountBuyer  = "BUYER"
	AccountSeller = "SELLER"
)

// User is the profile of an authenticated account
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Avatar      *string   `json:"avatar,omitempty" db:"avatar"`
	AccountType string    `json:"account_type" db:"account_type"`
	IsActive    bool      `json:"-" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UserRepository defines the interface for profile data access
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// ShippingAddress is a delivery address saved by a user
type ShippingAddress struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name" validate:"required,max=255"`
	Email     string    `json:"email" db:"email" validate:"required,email"`
	Phone     string    `json:"phone" db:"phone" validate:"required,max=12"`
	Address   string    `json:"address" db:"address" validate:"required,max=1000"`
	City      string    `json:"city" db:"city" validate:"required,max=100"`
	Country   string    `json:"country" db:"country" validate:"required,max=200"`
	Zipcode   string    `json:"zipcode" db:"zipcode" validate:"required,max=6"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ShippingAddressRepository defines the interface for address data access
type ShippingAddressRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ShippingAddress, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ShippingAddress, error)

	// FindIdentical returns the user's address with exactly the same fields, if any
	FindIdentical(ctx context.Context, address *ShippingAddress) (*ShippingAddress, error)

	Create(ctx context.Context, address *ShippingAddress) error
	Update(ctx context.Context, address *ShippingAddress) error
	Delete(ctx context.Context, id uuid.UUID) error
}
