package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/handlers/dto"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"go.uber.org/zap"
)

func (h *WorklistHandler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	completed := queryBool(r, "completed")
	items, err := h.Service.ListMilestones(r.Context(), completed)
	if err != nil {
		handleError(w, r, err, "list_milestones")
		return
	}

	logger.Info("HTTP_OUT: milestones listed",
		zap.Bool("completed", completed),
		zap.Int("count", len(items)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK,
		toPayload("milestones", items),
		toPayload("completed", completed),
	)
}

func (h *WorklistHandler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.MilestoneRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	m, err := h.Service.CreateMilestone(r.Context(), request.Input())
	if err != nil {
		handleError(w, r, err, "create_milestone")
		return
	}

	logger.Info("HTTP_OUT: milestone created",
		zap.String("milestone_id", m.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("milestone", m))
}

func (h *WorklistHandler) CompleteMilestone(w http.ResponseWriter, r *http.Request) {
	h.toggleMilestone(w, r, "complete_milestone", h.Service.CompleteMilestone)
}

func (h *WorklistHandler) UncompleteMilestone(w http.ResponseWriter, r *http.Request) {
	h.toggleMilestone(w, r, "uncomplete_milestone", h.Service.UncompleteMilestone)
}

func (h *WorklistHandler) toggleMilestone(w http.ResponseWriter, r *http.Request, operation string,
	toggle func(context.Context, uuid.UUID) (*models.Milestone, error)) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceMilestone)
	if !ok {
		return
	}

	m, err := toggle(r.Context(), id)
	if err != nil {
		handleError(w, r, err, operation)
		return
	}

	logger.Info("HTTP_OUT: milestone updated",
		zap.String("milestone_id", id.String()),
		zap.Bool("completed", m.Completed),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("milestone", m))
}
