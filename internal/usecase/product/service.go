package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/pkg/validator"
)

// slugRegexp matches characters not allowed in a slug
var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ProductCache caches products by slug
type ProductCache interface {
	GetProduct(ctx context.Context, slug string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
}

// CreateInput is a new catalog entry. Slug is derived from Name when empty.
type CreateInput struct {
	Slug        string
	Name        string
	Description *string
	Price       decimal.Decimal
}

// Service handles product business logic
type Service struct {
	repo   domain.ProductRepository
	cache  ProductCache
	logger *logger.Logger
}

// NewService creates a new product service
func NewService(repo domain.ProductRepository, cache ProductCache, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// Create adds a product to the catalog on behalf of sellerID
func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, in CreateInput) (*domain.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = generateSlug(in.Name)
	}

	product := &domain.Product{
		SellerID:    sellerID,
		Slug:        slug,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
	}

	if err := validator.Get().Struct(product); err != nil {
		s.logger.Debugf("Product validation failed: %v", err)
		return nil, domain.Validation(validator.Message(err))
	}
	if product.Price.IsNegative() {
		return nil, domain.Validation("price must not be negative")
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Conflict("a product with this slug already exists")
		}
		s.logger.Error("Failed to create product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
		"seller_id":  sellerID,
	}).Info("Product created successfully")

	return product, nil
}

// GetBySlug retrieves a product by slug, reading through the cache
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.cache.GetProduct(ctx, slug)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warnf("Failed to read cached product %s: %v", slug, err)
	}

	product, err = s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", slug)
			return nil, domain.NotFound("product not found")
		}
		s.logger.Error("Failed to get product", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %s: %v", slug, err)
	}

	return product, nil
}

// List retrieves a paginated list of products and the total count
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.Product, int, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count products", err)
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, total, nil
}

// generateSlug creates a URL-friendly slug from the given name
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRegexp.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
