package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/validator"
)

const (
	msgAddressNotFound  = "Shipping Address does not exist!"
	msgAddressForbidden = "you do not have access to this shipping address"
)

// ListAddresses returns the saved addresses of userID
func (s *Service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*domain.ShippingAddress, error) {
	addresses, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list shipping addresses", err)
		return nil, fmt.Errorf("failed to list shipping addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress saves an address for userID. An identical saved address is
// returned instead of creating a duplicate; created reports which happened.
func (s *Service) CreateAddress(ctx context.Context, userID uuid.UUID, address *domain.ShippingAddress) (*domain.ShippingAddress, bool, error) {
	address.UserID = userID
	if err := validator.Get().Struct(address); err != nil {
		return nil, false, domain.Validation(validator.Message(err))
	}

	existing, err := s.addresses.FindIdentical(ctx, address)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("Failed to look up shipping address", err)
		return nil, false, fmt.Errorf("failed to look up shipping address: %w", err)
	}

	if err := s.addresses.Create(ctx, address); err != nil {
		s.logger.Error("Failed to create shipping address", err)
		return nil, false, fmt.Errorf("failed to create shipping address: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
	}).Info("Shipping address created")

	return address, true, nil
}

// GetAddress returns one of the addresses of userID
func (s *Service) GetAddress(ctx context.Context, userID, id uuid.UUID) (*domain.ShippingAddress, error) {
	address, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(msgAddressNotFound)
		}
		s.logger.Error("Failed to get shipping address", err)
		return nil, fmt.Errorf("failed to get shipping address: %w", err)
	}

	if address.UserID != userID {
		return nil, domain.Forbidden(msgAddressForbidden)
	}

	return address, nil
}

// UpdateAddress replaces the fields of one of the addresses of userID
func (s *Service) UpdateAddress(ctx context.Context, userID, id uuid.UUID, in *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	address, err := s.GetAddress(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	in.ID = address.ID
	in.UserID = address.UserID
	in.CreatedAt = address.CreatedAt
	if err := validator.Get().Struct(in); err != nil {
		return nil, domain.Validation(validator.Message(err))
	}

	if err := s.addresses.Update(ctx, in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(msgAddressNotFound)
		}
		s.logger.Error("Failed to update shipping address", err)
		return nil, fmt.Errorf("failed to update shipping address: %w", err)
	}

	return in, nil
}

// DeleteAddress removes one of the addresses of userID
func (s *Service) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetAddress(ctx, userID, id); err != nil {
		return err
	}

	if err := s.addresses.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound(msgAddressNotFound)
		}
		s.logger.Error("Failed to delete shipping address", err)
		return fmt.Errorf("failed to delete shipping address: %w", err)
	}

	return nil
}
