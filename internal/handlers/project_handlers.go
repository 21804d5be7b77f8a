package handlers

import (
	"net/http"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/handlers/dto"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"go.uber.org/zap"
)

func (h *WorklistHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	list, err := h.Service.ListProjects(r.Context(), listQuery(r))
	if err != nil {
		handleError(w, r, err, "list_projects")
		return
	}

	logger.Info("HTTP_OUT: projects listed",
		zap.Int("count", len(list.Projects)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("projects", list.Projects),
		toPayload("query", list.Query),
		toPayload("choices", list.Choices),
		toPayload("priorities", list.Priorities),
		toPayload("sort_keys", list.SortKeys),
	)
}

func (h *WorklistHandler) ListArchivedProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	entries, err := h.Service.ListArchivedProjects(r.Context())
	if err != nil {
		handleError(w, r, err, "list_archived_projects")
		return
	}

	logger.Info("HTTP_OUT: archived projects listed",
		zap.Int("count", len(entries)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("projects", entries))
}

// FormChoices serves the options of the create forms.
func (h *WorklistHandler) FormChoices(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	choices, err := h.Service.FormChoices(r.Context())
	if err != nil {
		handleError(w, r, err, "form_choices")
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("choices", choices))
}

func (h *WorklistHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.ProjectRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	p, err := h.Service.CreateProject(r.Context(), request.Input())
	if err != nil {
		handleError(w, r, err, "create_project")
		return
	}

	logger.Info("HTTP_OUT: project created",
		zap.String("project_id", p.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("project", p))
}

func (h *WorklistHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceProject)
	if !ok {
		return
	}

	detail, err := h.Service.GetProjectDetail(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_project")
		return
	}

	logger.Info("HTTP_OUT: project loaded",
		zap.String("project_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("detail", detail))
}

// EditProject serves the current project with the form options.
func (h *WorklistHandler) EditProject(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceProject)
	if !ok {
		return
	}

	p, err := h.Service.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "edit_project")
		return
	}
	choices, err := h.Service.FormChoices(r.Context())
	if err != nil {
		handleError(w, r, err, "edit_project")
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("project", p),
		toPayload("choices", choices),
	)
}

func (h *WorklistHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceProject)
	if !ok {
		return
	}

	var request dto.ProjectRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	p, err := h.Service.UpdateProject(r.Context(), id, request.Input())
	if err != nil {
		handleError(w, r, err, "update_project")
		return
	}

	logger.Info("HTTP_OUT: project updated",
		zap.String("project_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("project", p))
}

func (h *WorklistHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceProject)
	if !ok {
		return
	}

	var request dto.ArchiveRequest
	if !decodeOptionalJSON(w, r, &request) {
		return
	}

	p, err := h.Service.ArchiveProject(r.Context(), id, request.ActualHours.String())
	if err != nil {
		handleError(w, r, err, "archive_project")
		return
	}

	logger.Info("HTTP_OUT: project archived",
		zap.String("project_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("project", p))
}

func (h *WorklistHandler) UnarchiveProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceProject)
	if !ok {
		return
	}

	p, err := h.Service.UnarchiveProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "unarchive_project")
		return
	}

	logger.Info("HTTP_OUT: project unarchived",
		zap.String("project_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("project", p))
}

func (h *WorklistHandler) PurgeProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceProject)
	if !ok {
		return
	}

	if err := h.Service.PurgeProject(r.Context(), id); err != nil {
		handleError(w, r, err, "purge_project")
		return
	}

	logger.Info("HTTP_OUT: project purged",
		zap.String("project_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK,
		toPayload("id", id),
		toPayload("status", "purged"),
	)
}
