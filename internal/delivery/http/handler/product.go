package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Pesokrava/profile_reviews/internal/delivery/http/request"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/response"
	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/usecase/product"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *product.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Slug        string          `json:"slug,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create a product owned by the calling seller. The slug is derived from the name when omitted.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Product details"
// @Success 201 {object} map[string]interface{} "Product created successfully"
// @Failure 400 {object} response.ErrorBody "Invalid request body"
// @Failure 403 {object} response.ErrorBody "Not a seller, or slug already taken"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), sellerID, product.CreateInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, created)
}

// GetBySlug handles GET /api/v1/products/{slug}
// @Summary Get a product by slug
// @Description Get product details including the average rating. Results are cached.
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 404 {object} response.ErrorBody "Product not found"
// @Router /products/{slug} [get]
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug, err := request.GetStringParam(r, "slug")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product slug", string(domain.KindValidation))
		return
	}

	p, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, p)
}

// List handles GET /api/v1/products
// @Summary List all products
// @Description Get a paginated list of products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of items per page (max 100)" default(20)
// @Param offset query int false "Number of items to skip" default(0)
// @Success 200 {object} map[string]interface{} "Paginated list of products"
// @Failure 500 {object} response.ErrorBody "Internal server error"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := request.GetPaginationParams(r)

	products, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Paginated(w, products, total, limit, offset)
}
