package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

const msgOrderNotFound = "Order does not exist!"

// ListOrders returns the orders of userID, newest first, with their items
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrderItems returns the items of the order txRef. Orders of other users
// are reported as missing so their references are never confirmed.
func (s *Service) ListOrderItems(ctx context.Context, userID uuid.UUID, txRef string) ([]*domain.OrderItem, error) {
	order, err := s.orders.GetByTxRef(ctx, txRef)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(msgOrderNotFound)
		}
		s.logger.Error("Failed to get order", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.UserID != userID {
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"tx_ref":  txRef,
		}).Warn("Order requested by another user")
		return nil, domain.NotFound(msgOrderNotFound)
	}

	items, err := s.orders.ListItems(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to list order items", err)
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	return items, nil
}
