package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/usecase/profile"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of domain.ShippingAddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ShippingAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShippingAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) FindIdentical(ctx context.Context, address *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingAddress), args.Error(1)
}

func (m *MockAddressRepository) Create(ctx context.Context, address *domain.ShippingAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Update(ctx context.Context, address *domain.ShippingAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTxRef(ctx context.Context, txRef string) (*domain.Order, error) {
	args := m.Called(ctx, txRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OrderItem), args.Error(1)
}

type profileFixture struct {
	router    chi.Router
	users     *MockUserRepository
	addresses *MockAddressRepository
	orders    *MockOrderRepository
}

func setupProfileHandler(userID uuid.UUID) *profileFixture {
	log := logger.New("test")
	f := &profileFixture{
		users:     new(MockUserRepository),
		addresses: new(MockAddressRepository),
		orders:    new(MockOrderRepository),
	}
	h := NewProfileHandler(profile.NewService(f.users, f.addresses, f.orders, log), log)

	r := chi.NewRouter()
	r.Use(asUser(userID, domain.AccountBuyer))
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Deactivate)
		r.Get("/shipping-addresses", h.ListAddresses)
		r.Post("/shipping-addresses", h.CreateAddress)
		r.Get("/shipping-addresses/{id}", h.GetAddress)
		r.Put("/shipping-addresses/{id}", h.UpdateAddress)
		r.Delete("/shipping-addresses/{id}", h.DeleteAddress)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{tx_ref}", h.ListOrderItems)
	})
	f.router = r
	return f
}

func validAddress() map[string]string {
	return map[string]string{
		"full_name": "Ada Obi",
		"email":     "ada@example.com",
		"phone":     "08012345678",
		"address":   "12 Marina Road",
		"city":      "Lagos",
		"country":   "Nigeria",
		"zipcode":   "100001",
	}
}

func TestProfileHandler_GetAndUpdate(t *testing.T) {
	userID := uuid.New()
	f := setupProfileHandler(userID)
	user := &domain.User{ID: userID, Email: "ada@example.com", FirstName: "Ada", LastName: "Obi", AccountType: domain.AccountBuyer, IsActive: true}
	f.users.On("GetByID", mock.Anything, userID).Return(user, nil)
	f.users.On("UpdateProfile", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	w := do(t, f.router, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decodeBody(t, w)["data"].(map[string]interface{})["first_name"])

	w = do(t, f.router, http.MethodPut, "/profile", `{"first_name": "Adaeze"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Adaeze", data["first_name"])
	assert.Equal(t, "Obi", data["last_name"])

	w = do(t, f.router, http.MethodPut, "/profile", `{"first_name": "abcdefghijklmnopqrstuvwxyz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_Deactivate(t *testing.T) {
	userID := uuid.New()
	f := setupProfileHandler(userID)
	f.users.On("Deactivate", mock.Anything, userID).Return(nil)

	w := do(t, f.router, http.MethodDelete, "/profile", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, profile.MsgDeactivated, decodeBody(t, w)["message"])
	f.users.AssertExpectations(t)
}

func TestProfileHandler_CreateAddress(t *testing.T) {
	userID := uuid.New()

	t.Run("new address", func(t *testing.T) {
		f := setupProfileHandler(userID)
		f.addresses.On("FindIdentical", mock.Anything, mock.AnythingOfType("*domain.ShippingAddress")).Return(nil, domain.ErrNotFound)
		f.addresses.On("Create", mock.Anything, mock.AnythingOfType("*domain.ShippingAddress")).Return(nil)

		w := do(t, f.router, http.MethodPost, "/profile/shipping-addresses", validAddress())

		assert.Equal(t, http.StatusCreated, w.Code)
		f.addresses.AssertExpectations(t)
	})

	t.Run("identical address", func(t *testing.T) {
		f := setupProfileHandler(userID)
		existing := &domain.ShippingAddress{ID: uuid.New(), UserID: userID, FullName: "Ada Obi"}
		f.addresses.On("FindIdentical", mock.Anything, mock.AnythingOfType("*domain.ShippingAddress")).Return(existing, nil)

		w := do(t, f.router, http.MethodPost, "/profile/shipping-addresses", validAddress())

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, existing.ID.String(), decodeBody(t, w)["data"].(map[string]interface{})["id"])
		f.addresses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid address", func(t *testing.T) {
		f := setupProfileHandler(userID)
		body := validAddress()
		body["zipcode"] = "1234567"

		w := do(t, f.router, http.MethodPost, "/profile/shipping-addresses", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation", decodeBody(t, w)["code"])
	})
}

func TestProfileHandler_AddressOwnership(t *testing.T) {
	userID := uuid.New()
	f := setupProfileHandler(userID)
	mine := &domain.ShippingAddress{ID: uuid.New(), UserID: userID, FullName: "Ada Obi"}
	theirs := &domain.ShippingAddress{ID: uuid.New(), UserID: uuid.New(), FullName: "Someone Else"}
	missing := uuid.New()
	f.addresses.On("GetByID", mock.Anything, mine.ID).Return(mine, nil)
	f.addresses.On("GetByID", mock.Anything, theirs.ID).Return(theirs, nil)
	f.addresses.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrNotFound)
	f.addresses.On("Delete", mock.Anything, mine.ID).Return(nil)

	assert.Equal(t, http.StatusOK, do(t, f.router, http.MethodGet, "/profile/shipping-addresses/"+mine.ID.String(), nil).Code)

	w := do(t, f.router, http.MethodGet, "/profile/shipping-addresses/"+theirs.ID.String(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decodeBody(t, w)["code"])

	w = do(t, f.router, http.MethodGet, "/profile/shipping-addresses/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Shipping Address does not exist!", decodeBody(t, w)["error"])

	assert.Equal(t, http.StatusBadRequest, do(t, f.router, http.MethodGet, "/profile/shipping-addresses/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, f.router, http.MethodDelete, "/profile/shipping-addresses/"+theirs.ID.String(), nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, f.router, http.MethodDelete, "/profile/shipping-addresses/"+mine.ID.String(), nil).Code)
	f.addresses.AssertNumberOfCalls(t, "Delete", 1)
}

func TestProfileHandler_Orders(t *testing.T) {
	userID := uuid.New()
	f := setupProfileHandler(userID)
	order := &domain.Order{ID: uuid.New(), TxRef: "tx-1", UserID: userID, Status: "PAID", Total: decimal.RequireFromString("25.00")}
	foreign := &domain.Order{ID: uuid.New(), TxRef: "tx-2", UserID: uuid.New()}
	items := []*domain.OrderItem{{ID: uuid.New(), OrderID: order.ID, ProductSlug: "blue-mug", Quantity: 2, Price: decimal.RequireFromString("12.50")}}
	f.orders.On("ListByUser", mock.Anything, userID).Return([]*domain.Order{order}, nil)
	f.orders.On("GetByTxRef", mock.Anything, "tx-1").Return(order, nil)
	f.orders.On("GetByTxRef", mock.Anything, "tx-2").Return(foreign, nil)
	f.orders.On("ListItems", mock.Anything, order.ID).Return(items, nil)

	w := do(t, f.router, http.MethodGet, "/profile/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = do(t, f.router, http.MethodGet, "/profile/orders/tx-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "blue-mug", data[0].(map[string]interface{})["product_slug"])

	w = do(t, f.router, http.MethodGet, "/profile/orders/tx-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order does not exist!", decodeBody(t, w)["error"])
}
