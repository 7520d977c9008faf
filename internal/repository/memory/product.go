package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/domain"
)

// ProductRepository implements domain.ProductRepository in memory
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewProductRepository creates an in-memory product repository holding products
func NewProductRepository(products ...*domain.Product) *ProductRepository {
	repo := &ProductRepository{products: make(map[string]*domain.Product)}
	for _, p := range products {
		_ = repo.Create(context.Background(), p)
	}
	return repo
}

// Create stores a product; ErrAlreadyExists if the slug is taken
func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.Slug]; ok {
		return domain.ErrAlreadyExists
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Version = 1

	stored := *product
	r.products[product.Slug] = &stored
	return nil
}

// GetBySlug retrieves a product by slug
func (r *ProductRepository) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[slug]
	if !ok || product.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}

	copied := *product
	return &copied, nil
}

// List returns products newest first
func (r *ProductRepository) List(_ context.Context, limit, offset int) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.DeletedAt == nil {
			copied := *p
			all = append(all, &copied)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return []*domain.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count returns the number of products
func (r *ProductRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.products {
		if p.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}
