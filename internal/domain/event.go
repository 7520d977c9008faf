package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review event types published on the review events subject
const (
	EventReviewCreated = "review.created"
	EventReviewUpdated = "review.updated"
	EventReviewHidden  = "review.hidden"
	EventReviewDeleted = "review.deleted"
)

// ReviewEvent is the message published after every review transition.
// Consumers only need the product to recompute its rating; the rest is for notifications.
type ReviewEvent struct {
	Type        string    `json:"type"`
	ReviewID    uuid.UUID `json:"review_id"`
	UserID      uuid.UUID `json:"user_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductSlug string    `json:"product_slug"`
	Rating      int       `json:"rating"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewReviewEvent builds an event of the given type for review
func NewReviewEvent(eventType string, review *Review) ReviewEvent {
	return ReviewEvent{
		Type:        eventType,
		ReviewID:    review.ID,
		UserID:      review.UserID,
		ProductID:   review.ProductID,
		ProductSlug: review.ProductSlug,
		Rating:      review.Rating,
		Timestamp:   time.Now().UTC(),
	}
}
