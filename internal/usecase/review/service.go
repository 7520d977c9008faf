package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/pkg/metrics"
)

const (
	msgProductNotFound = "product not found"
	msgNoReview        = "you have not reviewed this product"
	msgAlreadyReviewed = "you have already reviewed this product"
	msgNoHiddenReview  = "you have no hidden review for this product"

	// MsgHardDeleted is the outcome of a permanent delete
	MsgHardDeleted = "review permanently deleted"
	// MsgSoftDeleted is the outcome of hiding a review
	MsgSoftDeleted = "review hidden"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ReviewCache caches the active review list of each user
type ReviewCache interface {
	GetUserReviews(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)
	SetUserReviews(ctx context.Context, userID uuid.UUID, reviews []*domain.Review) error
	InvalidateUserReviews(ctx context.Context, userID uuid.UUID) error
}

// ProductFinder resolves the product a review refers to
type ProductFinder interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// CreateInput is a new review as decoded from the request.
// Rating is left untyped so that the policy decides what counts as a valid number.
type CreateInput struct {
	Rating any
	Text   *string
}

// UpdateInput is a partial review change. HasRating distinguishes an absent rating from an explicit null.
type UpdateInput struct {
	Rating    any
	HasRating bool
	Text      *string
}

// Service runs the review lifecycle: NoReview -> Active -> SoftDeleted -> gone
type Service struct {
	repo      domain.ReviewRepository
	products  ProductFinder
	policy    *Policy
	cache     ReviewCache
	publisher EventPublisher
	subject   string
	logger    *logger.Logger
}

// NewService creates a new review service
func NewService(
	repo domain.ReviewRepository,
	products ProductFinder,
	cache ReviewCache,
	publisher EventPublisher,
	subject string,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		policy:    NewPolicy(repo),
		cache:     cache,
		publisher: publisher,
		subject:   subject,
		logger:    log,
	}
}

// ParseHardDelete reports whether the variant_delete query value asks for a permanent delete
func ParseHardDelete(raw string) bool {
	return strings.EqualFold(raw, "yes")
}

// GetReview returns the caller's active review of the product
func (s *Service) GetReview(ctx context.Context, userID uuid.UUID, slug string) (*domain.Review, error) {
	product, err := s.product(ctx, slug)
	if err != nil {
		return nil, err
	}

	return s.owned(ctx, userID, product, domain.ScopeActive, msgNoReview)
}

// CreateReview creates the caller's review of the product
func (s *Service) CreateReview(ctx context.Context, userID uuid.UUID, slug string, in CreateInput) (*domain.Review, error) {
	product, err := s.product(ctx, slug)
	if err != nil {
		return nil, err
	}

	ok, err := s.policy.CanCreate(ctx, userID, product.ID)
	if err != nil {
		s.logger.Error("Failed to check existing review", err)
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if !ok {
		return nil, domain.Conflict(msgAlreadyReviewed)
	}

	rating, err := s.policy.ValidateRating(in.Rating)
	if err != nil {
		return nil, err
	}

	var text string
	if in.Text != nil {
		if err := s.policy.ValidateText(*in.Text); err != nil {
			return nil, err
		}
		text = *in.Text
	}

	review := &domain.Review{
		UserID:      userID,
		ProductID:   product.ID,
		ProductSlug: product.Slug,
		Rating:      rating,
		Text:        text,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return nil, domain.Conflict(msgAlreadyReviewed)
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NotFound(msgProductNotFound)
		}
		s.logger.Error("Failed to create review", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.afterTransition(ctx, domain.EventReviewCreated, review)

	return review, nil
}

// UpdateReview applies a partial change to the caller's active review
func (s *Service) UpdateReview(ctx context.Context, userID uuid.UUID, slug string, in UpdateInput) (*domain.Review, error) {
	product, err := s.product(ctx, slug)
	if err != nil {
		return nil, err
	}

	review, err := s.owned(ctx, userID, product, domain.ScopeActive, msgNoReview)
	if err != nil {
		return nil, err
	}

	var patch domain.ReviewPatch
	if in.HasRating {
		rating, err := s.policy.ValidateRating(in.Rating)
		if err != nil {
			return nil, err
		}
		patch.Rating = &rating
	}
	if in.Text != nil {
		if err := s.policy.ValidateText(*in.Text); err != nil {
			return nil, err
		}
		patch.Text = in.Text
	}

	if patch.Empty() {
		return review, nil
	}

	updated, err := s.repo.Update(ctx, review.ID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(msgNoReview)
		}
		s.logger.Error("Failed to update review", err)
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	updated.ProductSlug = product.Slug

	s.afterTransition(ctx, domain.EventReviewUpdated, updated)

	return updated, nil
}

// DeleteReview hides the caller's active review, or removes it when hard is set.
// It returns the outcome message for the caller.
func (s *Service) DeleteReview(ctx context.Context, userID uuid.UUID, slug string, hard bool) (string, error) {
	product, err := s.product(ctx, slug)
	if err != nil {
		return "", err
	}

	review, err := s.owned(ctx, userID, product, domain.ScopeActive, msgNoReview)
	if err != nil {
		return "", err
	}

	if hard {
		return s.hardDelete(ctx, review)
	}

	if err := s.repo.SoftDelete(ctx, review.ID); err != nil {
		s.logger.Error("Failed to hide review", err)
		return "", fmt.Errorf("failed to hide review: %w", err)
	}

	s.afterTransition(ctx, domain.EventReviewHidden, review)

	return MsgSoftDeleted, nil
}

// GetHiddenReview returns the caller's most recently hidden review of the product
func (s *Service) GetHiddenReview(ctx context.Context, userID uuid.UUID, slug string) (*domain.Review, error) {
	product, err := s.product(ctx, slug)
	if err != nil {
		return nil, err
	}

	return s.owned(ctx, userID, product, domain.ScopeSoftDeleted, msgNoHiddenReview)
}

// DeleteHiddenReview permanently removes the caller's most recently hidden review of the product
func (s *Service) DeleteHiddenReview(ctx context.Context, userID uuid.UUID, slug string) (string, error) {
	product, err := s.product(ctx, slug)
	if err != nil {
		return "", err
	}

	review, err := s.owned(ctx, userID, product, domain.ScopeSoftDeleted, msgNoHiddenReview)
	if err != nil {
		return "", err
	}

	return s.hardDelete(ctx, review)
}

// ListMyReviews returns all active reviews of the caller, newest first
func (s *Service) ListMyReviews(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	reviews, err := s.cache.GetUserReviews(ctx, userID)
	if err == nil {
		s.logger.Debugf("Cache hit for user %s reviews", userID)
		return reviews, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warnf("Failed to read cached reviews for user %s: %v", userID, err)
	}

	reviews, err = s.repo.ListByOwner(ctx, userID, domain.ScopeActive)
	if err != nil {
		s.logger.Error("Failed to list reviews", err)
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	if err := s.cache.SetUserReviews(ctx, userID, reviews); err != nil {
		s.logger.Warnf("Failed to cache reviews for user %s: %v", userID, err)
	}

	return reviews, nil
}

func (s *Service) product(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(msgProductNotFound)
		}
		s.logger.Error("Failed to get product", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// owned finds the caller's review of product in scope and checks ownership
func (s *Service) owned(ctx context.Context, userID uuid.UUID, product *domain.Product, scope domain.Scope, notFound string) (*domain.Review, error) {
	review, err := s.repo.Find(ctx, userID, product.ID, scope)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(notFound)
		}
		s.logger.Error("Failed to find review", err)
		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	if !s.policy.CanAccess(userID, review) {
		s.logger.WithFields(map[string]interface{}{
			"user_id":   userID,
			"review_id": review.ID,
		}).Warn("Review ownership check failed")
		return nil, domain.Forbidden(msgForbidden)
	}

	review.ProductSlug = product.Slug
	return review, nil
}

func (s *Service) hardDelete(ctx context.Context, review *domain.Review) (string, error) {
	if err := s.repo.HardDelete(ctx, review.ID); err != nil {
		s.logger.Error("Failed to delete review", err)
		return "", fmt.Errorf("failed to delete review: %w", err)
	}

	s.afterTransition(ctx, domain.EventReviewDeleted, review)

	return MsgHardDeleted, nil
}

// afterTransition drops the owner's cached list, counts the transition and publishes its event.
// Failures here are logged and never fail the request.
func (s *Service) afterTransition(ctx context.Context, eventType string, review *domain.Review) {
	if err := s.cache.InvalidateUserReviews(ctx, review.UserID); err != nil {
		s.logger.Warnf("Failed to invalidate cached reviews for user %s: %v", review.UserID, err)
	}

	metrics.ReviewTransitions.WithLabelValues(eventType).Inc()

	s.logger.WithFields(map[string]interface{}{
		"event":      eventType,
		"review_id":  review.ID,
		"user_id":    review.UserID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	}).Info("Review transition")

	s.publishEvent(ctx, eventType, review)
}

func (s *Service) publishEvent(ctx context.Context, eventType string, review *domain.Review) {
	data, err := json.Marshal(domain.NewReviewEvent(eventType, review))
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for review %s", review.ID)
		return
	}

	if err := s.publisher.Publish(ctx, s.subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Errorf(err, "Failed to publish %s for review %s", eventType, review.ID)
		return
	}

	metrics.EventsPublished.WithLabelValues("ok").Inc()
}
