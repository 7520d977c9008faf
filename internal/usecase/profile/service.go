package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/pkg/validator"
)

// MsgDeactivated is the outcome of closing an account
const MsgDeactivated = "User Account Deactivated"

// UpdateInput lists the profile fields to change; nil fields are kept
type UpdateInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=25"`
	LastName  *string `json:"last_name" validate:"omitempty,max=25"`
	Avatar    *string `json:"avatar" validate:"omitempty,url"`
}

// Service handles the authenticated user's profile, shipping addresses and orders
type Service struct {
	users     domain.UserRepository
	addresses domain.ShippingAddressRepository
	orders    domain.OrderRepository
	logger    *logger.Logger
}

// NewService creates a new profile service
func NewService(
	users domain.UserRepository,
	addresses domain.ShippingAddressRepository,
	orders domain.OrderRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		users:     users,
		addresses: addresses,
		orders:    orders,
		logger:    log,
	}
}

// GetProfile returns the profile of userID
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("user not found")
		}
		s.logger.Error("Failed to get profile", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the supplied fields to the profile of userID
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateInput) (*domain.User, error) {
	if err := validator.Get().Struct(in); err != nil {
		return nil, domain.Validation(validator.Message(err))
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Avatar != nil {
		user.Avatar = in.Avatar
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("user not found")
		}
		s.logger.Error("Failed to update profile", err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Profile updated successfully")

	return user, nil
}

// Deactivate closes the account of userID and returns the outcome message
func (s *Service) Deactivate(ctx context.Context, userID uuid.UUID) (string, error) {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NotFound("user not found")
		}
		s.logger.Error("Failed to deactivate account", err)
		return "", fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Account deactivated")

	return MsgDeactivated, nil
}
