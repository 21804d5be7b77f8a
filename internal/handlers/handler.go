package handlers

import (
	"net/http"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/worklist"
	"go.uber.org/zap"
)

const serviceName = "worktracker"

type WorklistHandler struct {
	Service Service
}

func NewWorklistHandler(svc Service) *WorklistHandler {
	return &WorklistHandler{Service: svc}
}

func (h *WorklistHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: health check")

	if err := h.Service.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: health check failed", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", serviceName),
		)
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", serviceName),
	)
}

func (h *WorklistHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	d, err := h.Service.Dashboard(r.Context())
	if err != nil {
		handleError(w, r, err, "dashboard")
		return
	}

	logger.Info("HTTP_OUT: dashboard built",
		zap.String("today", d.Today),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("dashboard", d))
}

func (h *WorklistHandler) Export(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	filename, data, err := h.Service.ExportCSV(r.Context())
	if err != nil {
		handleError(w, r, err, "export")
		return
	}

	logger.Info("HTTP_OUT: worklist exported",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
		zap.Duration("ms", time.Since(start)))

	responseWithAttachment(w, "text/csv; charset=utf-8", filename, data)
}

func listQuery(r *http.Request) worklist.ListQuery {
	q := r.URL.Query()
	return worklist.ListQuery{
		Priority:  q.Get("priority"),
		Attorney:  q.Get("attorney"),
		Assigner:  q.Get("assigner"),
		SortBy:    worklist.SortKey(q.Get("sort_by")),
		SortOrder: worklist.SortOrder(q.Get("sort_order")),
	}
}
