package handlers

import (
	"net/http"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/handlers/dto"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"go.uber.org/zap"
)

func (h *WorklistHandler) CreateStatusUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.StatusUpdateRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	u, err := h.Service.CreateStatusUpdate(r.Context(), request.Input())
	if err != nil {
		handleError(w, r, err, "create_status_update")
		return
	}

	logger.Info("HTTP_OUT: status update created",
		zap.String("update_id", u.ID.String()),
		zap.String("project_id", u.ProjectID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("status_update", u))
}
