package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

type testDeps struct {
	users     *MockUserRepository
	addresses *MockAddressRepository
	orders    *MockOrderRepository
}

func newTestService() (*Service, testDeps) {
	deps := testDeps{
		users:     new(MockUserRepository),
		addresses: new(MockAddressRepository),
		orders:    new(MockOrderRepository),
	}
	return NewService(deps.users, deps.addresses, deps.orders, logger.New("test")), deps
}

func kindOf(t *testing.T, err error) domain.ErrorKind {
	t.Helper()
	var derr *domain.Error
	require.True(t, errors.As(err, &derr), "expected domain error, got %v", err)
	return derr.Kind
}

func strPtr(s string) *string { return &s }

func validAddress() *domain.ShippingAddress {
	return &domain.ShippingAddress{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "5550100",
		Address:  "12 Analytical Row",
		City:     "London",
		Country:  "UK",
		Zipcode:  "N19GU",
	}
}

func TestService_UpdateProfile_MergesFields(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()
	user := &domain.User{ID: userID, FirstName: "Ada", LastName: "Byron"}

	deps.users.On("GetByID", mock.Anything, userID).Return(user, nil)
	deps.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.FirstName == "Ada" && u.LastName == "Lovelace"
	})).Return(nil)

	got, err := svc.UpdateProfile(context.Background(), userID, UpdateInput{LastName: strPtr("Lovelace")})

	require.NoError(t, err)
	assert.Equal(t, "Lovelace", got.LastName)
	deps.users.AssertExpectations(t)
}

func TestService_UpdateProfile_Validation(t *testing.T) {
	svc, deps := newTestService()

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateInput{FirstName: strPtr(strings.Repeat("x", 26))})
	assert.Equal(t, domain.KindValidation, kindOf(t, err))

	_, err = svc.UpdateProfile(context.Background(), uuid.New(), UpdateInput{Avatar: strPtr("not a url")})
	assert.Equal(t, domain.KindValidation, kindOf(t, err))

	deps.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_Deactivate(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()

	deps.users.On("Deactivate", mock.Anything, userID).Return(nil).Once()
	deps.users.On("Deactivate", mock.Anything, userID).Return(domain.ErrNotFound).Once()

	message, err := svc.Deactivate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "User Account Deactivated", message)

	_, err = svc.Deactivate(context.Background(), userID)
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))
}

func TestService_CreateAddress_ReturnsIdenticalAddress(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()
	existing := validAddress()
	existing.ID = uuid.New()
	existing.UserID = userID

	deps.addresses.On("FindIdentical", mock.Anything, mock.Anything).Return(existing, nil)

	got, created, err := svc.CreateAddress(context.Background(), userID, validAddress())

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, got.ID)
	deps.addresses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateAddress_New(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()

	deps.addresses.On("FindIdentical", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	deps.addresses.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.ShippingAddress) bool {
		return a.UserID == userID
	})).Return(nil)

	_, created, err := svc.CreateAddress(context.Background(), userID, validAddress())

	require.NoError(t, err)
	assert.True(t, created)
	deps.addresses.AssertExpectations(t)
}

func TestService_CreateAddress_Invalid(t *testing.T) {
	svc, _ := newTestService()
	address := validAddress()
	address.Email = "nope"
	address.Zipcode = "1234567"

	_, _, err := svc.CreateAddress(context.Background(), uuid.New(), address)

	assert.Equal(t, domain.KindValidation, kindOf(t, err))
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "zipcode")
}

func TestService_GetAddress(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()
	mine, theirs, missing := uuid.New(), uuid.New(), uuid.New()

	deps.addresses.On("GetByID", mock.Anything, mine).Return(&domain.ShippingAddress{ID: mine, UserID: userID}, nil)
	deps.addresses.On("GetByID", mock.Anything, theirs).Return(&domain.ShippingAddress{ID: theirs, UserID: uuid.New()}, nil)
	deps.addresses.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrNotFound)

	got, err := svc.GetAddress(context.Background(), userID, mine)
	require.NoError(t, err)
	assert.Equal(t, mine, got.ID)

	_, err = svc.GetAddress(context.Background(), userID, theirs)
	assert.Equal(t, domain.KindForbidden, kindOf(t, err))

	_, err = svc.GetAddress(context.Background(), userID, missing)
	assert.Equal(t, domain.KindNotFound, kindOf(t, err))
	assert.Contains(t, err.Error(), "Shipping Address does not exist!")
}

func TestService_UpdateAndDeleteAddress(t *testing.T) {
	svc, deps := newTestService()
	userID, id := uuid.New(), uuid.New()
	stored := validAddress()
	stored.ID = id
	stored.UserID = userID

	deps.addresses.On("GetByID", mock.Anything, id).Return(stored, nil)
	deps.addresses.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.ShippingAddress) bool {
		return a.ID == id && a.UserID == userID && a.City == "Paris"
	})).Return(nil)
	deps.addresses.On("Delete", mock.Anything, id).Return(nil)

	change := validAddress()
	change.City = "Paris"
	updated, err := svc.UpdateAddress(context.Background(), userID, id, change)
	require.NoError(t, err)
	assert.Equal(t, "Paris", updated.City)

	require.NoError(t, svc.DeleteAddress(context.Background(), userID, id))
	deps.addresses.AssertExpectations(t)
}

func TestService_ListOrderItems(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()
	order := &domain.Order{ID: uuid.New(), TxRef: "tx-1", UserID: userID}
	items := []*domain.OrderItem{{ID: uuid.New(), OrderID: order.ID, Quantity: 2}}

	deps.orders.On("GetByTxRef", mock.Anything, "tx-1").Return(order, nil)
	deps.orders.On("ListItems", mock.Anything, order.ID).Return(items, nil)

	got, err := svc.ListOrderItems(context.Background(), userID, "tx-1")

	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestService_ListOrderItems_HidesOtherUsersOrders(t *testing.T) {
	svc, deps := newTestService()
	order := &domain.Order{ID: uuid.New(), TxRef: "tx-2", UserID: uuid.New()}

	deps.orders.On("GetByTxRef", mock.Anything, "tx-2").Return(order, nil)
	deps.orders.On("GetByTxRef", mock.Anything, "tx-404").Return(nil, domain.ErrNotFound)

	_, errOther := svc.ListOrderItems(context.Background(), uuid.New(), "tx-2")
	_, errMissing := svc.ListOrderItems(context.Background(), uuid.New(), "tx-404")

	assert.Equal(t, domain.KindNotFound, kindOf(t, errOther))
	assert.Equal(t, errMissing.Error(), errOther.Error())
	deps.orders.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestService_ListOrders(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()

	deps.orders.On("ListByUser", mock.Anything, userID).Return(nil, errors.New("db down"))

	_, err := svc.ListOrders(context.Background(), userID)

	assert.ErrorContains(t, err, "db down")
}
