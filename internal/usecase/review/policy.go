package review

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/validator"
)

const (
	ratingRule = "oneof=1 2 3 4 5"
	textRule   = "max=5000"

	msgRatingRequired = "rating is required"
	msgRatingInvalid  = "rating must be an integer between 1 and 5"
	msgTextTooLong    = "text must be at most 5000 characters"
	msgForbidden      = "you do not have access to this review"
)

// Policy holds the rules a review must satisfy before it is created, read or changed
type Policy struct {
	repo domain.ReviewRepository
}

// NewPolicy creates a review policy backed by repo
func NewPolicy(repo domain.ReviewRepository) *Policy {
	return &Policy{repo: repo}
}

// CanCreate reports whether userID has no active review for productID
func (p *Policy) CanCreate(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	_, err := p.repo.Find(ctx, userID, productID, domain.ScopeActive)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CanAccess reports whether userID owns review
func (p *Policy) CanAccess(userID uuid.UUID, review *domain.Review) bool {
	return review != nil && review.UserID == userID
}

// ValidateRating converts a decoded rating into an int in 1..5.
// Go integers, integral float64 and json.Number are accepted; anything else is a validation error.
func (p *Policy) ValidateRating(value any) (int, error) {
	var n int64

	switch v := value.(type) {
	case nil:
		return 0, domain.Validation(msgRatingRequired)
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return 0, domain.Validation(msgRatingInvalid)
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, domain.Validation(msgRatingInvalid)
			}
			return p.ValidateRating(f)
		}
		n = i
	default:
		return 0, domain.Validation(msgRatingInvalid)
	}

	if err := validator.Get().Var(n, ratingRule); err != nil {
		return 0, domain.Validation(msgRatingInvalid)
	}

	return int(n), nil
}

// ValidateText checks the review text length; empty text is allowed
func (p *Policy) ValidateText(text string) error {
	if err := validator.Get().Var(text, textRule); err != nil {
		return domain.Validation(msgTextTooLong)
	}
	return nil
}
