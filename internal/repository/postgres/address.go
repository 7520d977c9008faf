package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

const addressColumns = `
	id, user_id, full_name, email, phone, address, city, country, zipcode, created_at, updated_at`

// ShippingAddressRepository implements domain.ShippingAddressRepository for PostgreSQL
type ShippingAddressRepository struct {
	db *sqlx.DB
}

// NewShippingAddressRepository creates a new PostgreSQL shipping address repository
func NewShippingAddressRepository(db *sqlx.DB) *ShippingAddressRepository {
	return &ShippingAddressRepository{db: db}
}

// ListByUser returns the user's addresses, newest first
func (r *ShippingAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + `
		FROM shipping_addresses
		WHERE user_id = $1
		ORDER BY created_at DESC`

	addresses := []*domain.ShippingAddress{}
	if err := r.db.SelectContext(ctx, &addresses, query, userID); err != nil {
		return nil, err
	}

	return addresses, nil
}

// GetByID retrieves an address by ID
func (r *ShippingAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + `
		FROM shipping_addresses
		WHERE id = $1`

	var address domain.ShippingAddress
	err := r.db.GetContext(ctx, &address, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &address, nil
}

// FindIdentical returns the user's address whose fields all match address
func (r *ShippingAddressRepository) FindIdentical(ctx context.Context, address *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + `
		FROM shipping_addresses
		WHERE user_id = $1 AND full_name = $2 AND email = $3 AND phone = $4
		  AND address = $5 AND city = $6 AND country = $7 AND zipcode = $8
		ORDER BY created_at
		LIMIT 1`

	var found domain.ShippingAddress
	err := r.db.GetContext(
		ctx,
		&found,
		query,
		address.UserID,
		address.FullName,
		address.Email,
		address.Phone,
		address.Address,
		address.City,
		address.Country,
		address.Zipcode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &found, nil
}

// Create inserts a new address
func (r *ShippingAddressRepository) Create(ctx context.Context, address *domain.ShippingAddress) error {
	query := `
		INSERT INTO shipping_addresses (user_id, full_name, email, phone, address, city, country, zipcode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx,
		query,
		address.UserID,
		address.FullName,
		address.Email,
		address.Phone,
		address.Address,
		address.City,
		address.Country,
		address.Zipcode,
		time.Now(),
	).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)
}

// Update replaces every editable field of an address
func (r *ShippingAddressRepository) Update(ctx context.Context, address *domain.ShippingAddress) error {
	query := `
		UPDATE shipping_addresses
		SET full_name = $1, email = $2, phone = $3, address = $4, city = $5, country = $6, zipcode = $7, updated_at = $8
		WHERE id = $9
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		address.FullName,
		address.Email,
		address.Phone,
		address.Address,
		address.City,
		address.Country,
		address.Zipcode,
		time.Now(),
		address.ID,
	).Scan(&address.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete removes an address
func (r *ShippingAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shipping_addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
