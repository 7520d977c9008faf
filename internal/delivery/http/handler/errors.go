package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/profile_reviews/internal/delivery/http/response"
	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

// handleError maps service layer errors to HTTP responses
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		response.Error(w, statusFor(domainErr.Kind), domainErr.Message, string(domainErr.Kind))
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Resource not found", string(domain.KindNotFound))
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input", string(domain.KindValidation))
	default:
		log.Error("Internal error in handler", err)
		response.Internal(w)
	}
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func invalidBody(w http.ResponseWriter) {
	response.Error(w, http.StatusBadRequest, "Invalid request body", string(domain.KindValidation))
}
