package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a placed order. Totals are computed upstream; this service only reads them.
type Order struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	TxRef     string          `json:"tx_ref" db:"tx_ref"`
	UserID    uuid.UUID       `json:"-" db:"user_id"`
	Status    string          `json:"status" db:"status"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Items     []*OrderItem    `json:"items" db:"-"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem is a single product line of an order
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductSlug string          `json:"product_slug" db:"product_slug"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// ListByUser returns the user's orders newest first, with items attached
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)

	GetByTxRef(ctx context.Context, txRef string) (*Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error)
}
