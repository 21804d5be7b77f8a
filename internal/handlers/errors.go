package handlers

import (
	"errors"
	"net/http"

	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"go.uber.org/zap"
)

const codeInternal = "INTERNAL_ERROR"

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: business error",
		zap.String("error_code", businessErr.Code),
		zap.String("message", businessErr.Message),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeAlreadyArchived, service.CodeNotArchived, service.CodeProjectArchived:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError answers with the business error, or a 500 for anything else.
func handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: service error", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithJSON(w, http.StatusInternalServerError,
		toPayload("error", codeInternal),
		toPayload("message", "internal server error"),
	)
}
