package handler

import (
	"net/http"

	"github.com/Pesokrava/profile_reviews/internal/delivery/http/request"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/response"
	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
	"github.com/Pesokrava/profile_reviews/internal/usecase/profile"
)

// ProfileHandler handles HTTP requests for the caller's profile, addresses and orders
type ProfileHandler struct {
	service *profile.Service
	logger  *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *profile.Service, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  log,
	}
}

// AddressRequest represents the request body for creating or replacing a shipping address
type AddressRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Zipcode  string `json:"zipcode"`
}

func (req AddressRequest) toDomain() *domain.ShippingAddress {
	return &domain.ShippingAddress{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Zipcode:  req.Zipcode,
	}
}

// Get handles GET /api/v1/profile
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 404 {object} response.ErrorBody "User not found"
// @Router /profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, user)
}

// Update handles PUT /api/v1/profile
// @Summary Update my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body profile.UpdateInput true "Fields to change"
// @Success 200 {object} map[string]interface{} "Updated profile"
// @Failure 400 {object} response.ErrorBody "Invalid request body"
// @Failure 404 {object} response.ErrorBody "User not found"
// @Router /profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in profile.UpdateInput
	if err := request.DecodeJSON(r, &in); err != nil {
		invalidBody(w)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, user)
}

// Deactivate handles DELETE /api/v1/profile
// @Summary Deactivate my account
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Outcome message"
// @Failure 404 {object} response.ErrorBody "User not found"
// @Router /profile [delete]
func (h *ProfileHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	msg, err := h.service.Deactivate(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Message(w, msg)
}

// ListAddresses handles GET /api/v1/profile/shipping-addresses
// @Summary List my shipping addresses
// @Tags Shipping addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Shipping addresses"
// @Router /profile/shipping-addresses [get]
func (h *ProfileHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, addresses)
}

// CreateAddress handles POST /api/v1/profile/shipping-addresses
// @Summary Save a shipping address
// @Description Returns 201 for a new address and 200 when an identical address was already saved.
// @Tags Shipping addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param address body AddressRequest true "Address"
// @Success 200 {object} map[string]interface{} "Existing identical address"
// @Success 201 {object} map[string]interface{} "Address created"
// @Failure 400 {object} response.ErrorBody "Invalid request body"
// @Router /profile/shipping-addresses [post]
func (h *ProfileHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req AddressRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	address, created, err := h.service.CreateAddress(r.Context(), userID, req.toDomain())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if created {
		response.Created(w, address)
		return
	}
	response.Success(w, address)
}

// GetAddress handles GET /api/v1/profile/shipping-addresses/{id}
// @Summary Get one of my shipping addresses
// @Tags Shipping addresses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID (UUID)"
// @Success 200 {object} map[string]interface{} "Shipping address"
// @Failure 403 {object} response.ErrorBody "Address belongs to another user"
// @Failure 404 {object} response.ErrorBody "Address not found"
// @Router /profile/shipping-addresses/{id} [get]
func (h *ProfileHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address ID", string(domain.KindValidation))
		return
	}

	address, err := h.service.GetAddress(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, address)
}

// UpdateAddress handles PUT /api/v1/profile/shipping-addresses/{id}
// @Summary Replace one of my shipping addresses
// @Tags Shipping addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID (UUID)"
// @Param address body AddressRequest true "Address"
// @Success 200 {object} map[string]interface{} "Updated address"
// @Failure 400 {object} response.ErrorBody "Invalid request"
// @Failure 403 {object} response.ErrorBody "Address belongs to another user"
// @Failure 404 {object} response.ErrorBody "Address not found"
// @Router /profile/shipping-addresses/{id} [put]
func (h *ProfileHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address ID", string(domain.KindValidation))
		return
	}

	var req AddressRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), userID, id, req.toDomain())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, address)
}

// DeleteAddress handles DELETE /api/v1/profile/shipping-addresses/{id}
// @Summary Delete one of my shipping addresses
// @Tags Shipping addresses
// @Security BearerAuth
// @Param id path string true "Address ID (UUID)"
// @Success 204 "Address deleted"
// @Failure 403 {object} response.ErrorBody "Address belongs to another user"
// @Failure 404 {object} response.ErrorBody "Address not found"
// @Router /profile/shipping-addresses/{id} [delete]
func (h *ProfileHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address ID", string(domain.KindValidation))
		return
	}

	if err := h.service.DeleteAddress(r.Context(), userID, id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}

// ListOrders handles GET /api/v1/profile/orders
// @Summary List my orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Orders, newest first, with items"
// @Router /profile/orders [get]
func (h *ProfileHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, orders)
}

// ListOrderItems handles GET /api/v1/profile/orders/{tx_ref}
// @Summary List the items of one of my orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param tx_ref path string true "Order transaction reference"
// @Success 200 {object} map[string]interface{} "Order items"
// @Failure 404 {object} response.ErrorBody "Order not found"
// @Router /profile/orders/{tx_ref} [get]
func (h *ProfileHandler) ListOrderItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	txRef, err := request.GetStringParam(r, "tx_ref")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order reference", string(domain.KindValidation))
		return
	}

	items, err := h.service.ListOrderItems(r.Context(), userID, txRef)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	response.Success(w, items)
}
