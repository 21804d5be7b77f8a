package handlers

import (
	"net/http"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/handlers/dto"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"go.uber.org/zap"
)

func (h *WorklistHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	completed := queryBool(r, "completed")
	items, err := h.Service.ListTasks(r.Context(), completed)
	if err != nil {
		handleError(w, r, err, "list_tasks")
		return
	}

	logger.Info("HTTP_OUT: tasks listed",
		zap.Bool("completed", completed),
		zap.Int("count", len(items)),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK,
		toPayload("tasks", items),
		toPayload("completed", completed),
	)
}

func (h *WorklistHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.TaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	t, err := h.Service.CreateTask(r.Context(), request.Input())
	if err != nil {
		handleError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", t))
}

func (h *WorklistHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceTask)
	if !ok {
		return
	}

	item, err := h.Service.GetTask(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_task")
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("task", item.Task),
		toPayload("project", item.Project),
	)
}

// EditTask serves the task with the form options.
func (h *WorklistHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceTask)
	if !ok {
		return
	}

	item, err := h.Service.GetTask(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "edit_task")
		return
	}
	choices, err := h.Service.FormChoices(r.Context())
	if err != nil {
		handleError(w, r, err, "edit_task")
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("task", item.Task),
		toPayload("project", item.Project),
		toPayload("choices", choices),
	)
}

func (h *WorklistHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceTask)
	if !ok {
		return
	}

	var request dto.TaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	t, err := h.Service.UpdateTask(r.Context(), id, request.Input())
	if err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("task", t))
}

func (h *WorklistHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceTask)
	if !ok {
		return
	}

	t, err := h.Service.CompleteTask(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "complete_task")
		return
	}

	logger.Info("HTTP_OUT: task completed",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("task", t))
}

// SnoozeTask takes the day count from ?days=N or a {"days": N} body. The
// query wins when both are given.
func (h *WorklistHandler) SnoozeTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := pathID(w, r, service.ResourceTask)
	if !ok {
		return
	}

	var request dto.SnoozeRequest
	if !decodeOptionalJSON(w, r, &request) {
		return
	}
	if days := r.URL.Query().Get("days"); days != "" {
		request.Days = dto.Number(days)
	}

	t, err := h.Service.SnoozeTask(r.Context(), id, request.Days.Int())
	if err != nil {
		handleError(w, r, err, "snooze_task")
		return
	}

	logger.Info("HTTP_OUT: task snoozed",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("task", t))
}
