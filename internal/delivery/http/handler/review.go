package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/delivery/http/middleware"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/request"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/response"
	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/usecase/review"
)

// ReviewHandler handles HTTP requests for the caller's reviews
type ReviewHandler struct {
	service *review.Service
	logger  *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *review.Service, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  log,
	}
}

// ReviewRequest is the body of create and update requests. Rating is kept raw
// so that an absent rating can be told apart from an invalid one.
type ReviewRequest struct {
	Rating json.RawMessage `json:"rating" swaggertype:"integer"`
	Text   *string         `json:"text,omitempty"`
}

func (req ReviewRequest) hasRating() bool {
	return len(req.Rating) > 0
}

func (req ReviewRequest) rating() (any, error) {
	if !req.hasRating() {
		return nil, nil
	}
	return request.DecodeRaw(req.Rating)
}

// Get handles GET /api/v1/reviews/{slug}
// @Summary Get my review of a product
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{} "Active review"
// @Failure 404 {object} response.ErrorBody "Product or review not found"
// @Router /reviews/{slug} [get]
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.target(w, r)
	if !ok {
		return
	}

	rev, err := h.service.GetReview(r.Context(), userID, slug)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, rev)
}

// Create handles POST /api/v1/reviews/{slug}
// @Summary Review a product
// @Description Create the caller's review. A user has at most one active review per product.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Param review body ReviewRequest true "Rating (1-5) and optional text"
// @Success 201 {object} map[string]interface{} "Review created"
// @Failure 400 {object} response.ErrorBody "Invalid request body or rating"
// @Failure 403 {object} response.ErrorBody "An active review already exists"
// @Failure 404 {object} response.ErrorBody "Product not found"
// @Router /reviews/{slug} [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.target(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	rating, err := req.rating()
	if err != nil {
		invalidBody(w)
		return
	}

	rev, err := h.service.CreateReview(r.Context(), userID, slug, review.CreateInput{
		Rating: rating,
		Text:   req.Text,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, rev)
}

// Update handles PATCH /api/v1/reviews/{slug}
// @Summary Update my review of a product
// @Description Partially update the caller's active review; omitted fields are left unchanged.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Param review body ReviewRequest true "Fields to change"
// @Success 201 {object} map[string]interface{} "Review updated"
// @Failure 400 {object} response.ErrorBody "Invalid request body or rating"
// @Failure 404 {object} response.ErrorBody "Product or review not found"
// @Router /reviews/{slug} [patch]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.target(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	rating, err := req.rating()
	if err != nil {
		invalidBody(w)
		return
	}

	rev, err := h.service.UpdateReview(r.Context(), userID, slug, review.UpdateInput{
		Rating:    rating,
		HasRating: req.hasRating(),
		Text:      req.Text,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Created(w, rev)
}

// Delete handles DELETE /api/v1/reviews/{slug}
// @Summary Delete my review of a product
// @Description Hides the active review. With variant_delete=yes the review is removed permanently.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Param variant_delete query string false "yes for a permanent delete"
// @Success 200 {object} map[string]interface{} "Outcome message"
// @Failure 404 {object} response.ErrorBody "Product or review not found"
// @Router /reviews/{slug} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.target(w, r)
	if !ok {
		return
	}

	hard := review.ParseHardDelete(r.URL.Query().Get("variant_delete"))

	msg, err := h.service.DeleteReview(r.Context(), userID, slug, hard)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Message(w, msg)
}

// GetHidden handles GET /api/v1/reviews/{slug}/hidden
// @Summary Get my hidden review of a product
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{} "Most recently hidden review"
// @Failure 404 {object} response.ErrorBody "Product or hidden review not found"
// @Router /reviews/{slug}/hidden [get]
func (h *ReviewHandler) GetHidden(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.target(w, r)
	if !ok {
		return
	}

	rev, err := h.service.GetHiddenReview(r.Context(), userID, slug)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, rev)
}

// DeleteHidden handles DELETE /api/v1/reviews/{slug}/hidden
// @Summary Permanently delete my hidden review of a product
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{} "Outcome message"
// @Failure 404 {object} response.ErrorBody "Product or hidden review not found"
// @Router /reviews/{slug}/hidden [delete]
func (h *ReviewHandler) DeleteHidden(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.target(w, r)
	if !ok {
		return
	}

	msg, err := h.service.DeleteHiddenReview(r.Context(), userID, slug)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Message(w, msg)
}

// List handles GET /api/v1/reviews
// @Summary List my active reviews
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Active reviews, newest first"
// @Router /reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.ListMyReviews(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, reviews)
}

// target extracts the caller and the product slug, writing an error response when either is missing
func (h *ReviewHandler) target(w http.ResponseWriter, r *http.Request) (userID uuid.UUID, slug string, ok bool) {
	userID, ok = currentUser(w, r)
	if !ok {
		return userID, "", false
	}

	slug, err := request.GetStringParam(r, "slug")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product slug", string(domain.KindValidation))
		return userID, "", false
	}

	return userID, slug, true
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "authentication required", "unauthorized")
		return userID, false
	}
	return userID, true
}
