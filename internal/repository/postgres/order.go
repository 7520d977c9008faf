package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

const orderItemColumns = `
	i.id, i.order_id, i.product_id, p.slug AS product_slug, p.name AS product_name, i.quantity, i.price`

// OrderRepository implements domain.OrderRepository for PostgreSQL
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListByUser returns the user's orders newest first, each with its items
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT id, tx_ref, user_id, status, total, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	orders := []*domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, len(orders))
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
		order.Items = []*domain.OrderItem{}
		byID[order.ID] = order
	}

	itemsQuery := `SELECT ` + orderItemColumns + `
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::uuid[])
		ORDER BY i.order_id, p.name`

	var items []*domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, itemsQuery, pq.Array(uuidStrings(ids))); err != nil {
		return nil, err
	}

	for _, item := range items {
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	return orders, nil
}

// GetByTxRef retrieves an order by its transaction reference, without items
func (r *OrderRepository) GetByTxRef(ctx context.Context, txRef string) (*domain.Order, error) {
	query := `
		SELECT id, tx_ref, user_id, status, total, created_at, updated_at
		FROM orders
		WHERE tx_ref = $1
	`

	var order domain.Order
	err := r.db.GetContext(ctx, &order, query, txRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

// ListItems returns the items of an order
func (r *OrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + `
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY p.name`

	items := []*domain.OrderItem{}
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, err
	}

	return items, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
