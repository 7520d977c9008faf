package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

var addressRowColumns = []string{
	"id", "user_id", "full_name", "email", "phone", "address", "city", "country", "zipcode", "created_at", "updated_at",
}

func sampleAddress(userID uuid.UUID) *domain.ShippingAddress {
	return &domain.ShippingAddress{
		UserID:   userID,
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "5550100",
		Address:  "12 Analytical Row",
		City:     "London",
		Country:  "UK",
		Zipcode:  "N1 9GU",
	}
}

func TestShippingAddressRepository_FindIdentical(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShippingAddressRepository(db)

	userID := uuid.New()
	address := sampleAddress(userID)
	existingID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM shipping_addresses\s+WHERE user_id = \$1 AND full_name = \$2`).
		WithArgs(userID, address.FullName, address.Email, address.Phone, address.Address, address.City, address.Country, address.Zipcode).
		WillReturnRows(sqlmock.NewRows(addressRowColumns).AddRow(
			existingID.String(), userID.String(), address.FullName, address.Email, address.Phone,
			address.Address, address.City, address.Country, address.Zipcode, now, now,
		))

	found, err := repo.FindIdentical(context.Background(), address)

	require.NoError(t, err)
	assert.Equal(t, existingID, found.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShippingAddressRepository_FindIdentical_None(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShippingAddressRepository(db)

	mock.ExpectQuery("FROM shipping_addresses").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindIdentical(context.Background(), sampleAddress(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShippingAddressRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShippingAddressRepository(db)

	address := sampleAddress(uuid.New())
	newID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO shipping_addresses").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

	err := repo.Create(context.Background(), address)

	require.NoError(t, err)
	assert.Equal(t, newID, address.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShippingAddressRepository_Update_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShippingAddressRepository(db)

	mock.ExpectQuery("UPDATE shipping_addresses").WillReturnError(sql.ErrNoRows)

	address := sampleAddress(uuid.New())
	address.ID = uuid.New()
	err := repo.Update(context.Background(), address)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShippingAddressRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShippingAddressRepository(db)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM shipping_addresses WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM shipping_addresses WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
