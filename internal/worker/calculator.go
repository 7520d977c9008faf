package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/pkg/metrics"
)

// ProductInvalidator drops a cached product so readers see the new rating
type ProductInvalidator interface {
	InvalidateProduct(ctx context.Context, slug string) error
}

// Calculator recomputes product average ratings from active reviews
type Calculator struct {
	db     *sqlx.DB
	cache  ProductInvalidator
	logger *logger.Logger
}

// NewCalculator creates a new rating calculator
func NewCalculator(db *sqlx.DB, cache ProductInvalidator, logger *logger.Logger) *Calculator {
	return &Calculator{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// CalculateAndUpdate recalculates the average rating of a product over its active
// reviews and stores it. Hidden reviews do not count.
func (c *Calculator) CalculateAndUpdate(ctx context.Context, productID uuid.UUID) error {
	query := `
		UPDATE products
		SET
			average_rating = COALESCE(
				(SELECT ROUND(AVG(rating)::numeric, 1)
				 FROM reviews
				 WHERE product_id = $1 AND deleted_at IS NULL),
				0
			),
			updated_at = $2,
			version = version + 1
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING slug, average_rating
	`

	var result struct {
		Slug          string  `db:"slug"`
		AverageRating float64 `db:"average_rating"`
	}

	err := c.db.QueryRowxContext(ctx, query, productID, time.Now()).StructScan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RatingRecalculations.WithLabelValues("skipped").Inc()
		c.logger.WithFields(map[string]any{
			"product_id": productID.String(),
		}).Info("Product not found or deleted, skipping rating update")
		return nil
	}
	if err != nil {
		metrics.RatingRecalculations.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	metrics.RatingRecalculations.WithLabelValues("updated").Inc()

	if err := c.cache.InvalidateProduct(ctx, result.Slug); err != nil {
		c.logger.Warnf("Failed to invalidate cached product %s: %v", result.Slug, err)
	}

	c.logger.WithFields(map[string]any{
		"product_id":     productID.String(),
		"slug":           result.Slug,
		"average_rating": result.AverageRating,
	}).Info("Successfully updated product rating")

	return nil
}

// GetCurrentRating retrieves the stored average rating of a product
func (c *Calculator) GetCurrentRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	var rating sql.NullFloat64
	query := `SELECT average_rating FROM products WHERE id = $1 AND deleted_at IS NULL`

	err := c.db.GetContext(ctx, &rating, query, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to get current rating: %w", err)
	}

	if !rating.Valid {
		return 0, nil
	}

	return rating.Float64, nil
}
