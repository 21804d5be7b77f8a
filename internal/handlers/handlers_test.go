package handlers_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nomindnick/worktracker-v1/internal/handlers"
	"github.com/nomindnick/worktracker-v1/internal/models"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"github.com/nomindnick/worktracker-v1/internal/worklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(svc handlers.Service) http.Handler {
	r := chi.NewRouter()
	handlers.NewWorklistHandler(svc).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// TestWorklistHandler_HealthCheck checks the health endpoint.
func TestWorklistHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "success - healthy",
			setupMock: func(m *MockService) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - unhealthy",
			setupMock: func(m *MockService) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("service unavailable"))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := do(t, newRouter(mockService), http.MethodGet, "/health", "", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), "worktracker")
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorklistHandler_ErrorMapping checks the status code for every error kind.
func TestWorklistHandler_ErrorMapping(t *testing.T) {
	projectID := uuid.New()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", service.NewNotFound(service.ResourceProject, projectID.String()), http.StatusNotFound, service.CodeNotFound},
		{"already archived", service.NewBusinessError(service.CodeAlreadyArchived, "already archived"), http.StatusConflict, service.CodeAlreadyArchived},
		{"not archived", service.NewBusinessError(service.CodeNotArchived, "not archived"), http.StatusConflict, service.CodeNotArchived},
		{"project archived", service.NewBusinessError(service.CodeProjectArchived, "archived"), http.StatusConflict, service.CodeProjectArchived},
		{"unknown business code", service.NewBusinessError("SOMETHING_ELSE", "odd"), http.StatusInternalServerError, "SOMETHING_ELSE"},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("UnarchiveProject", mock.Anything, projectID).Return(nil, tt.err)

			w := do(t, newRouter(mockService), http.MethodPost, "/projects/"+projectID.String()+"/unarchive", "", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.expectedCode, body["error"])
			assert.NotContains(t, w.Body.String(), "connection refused")
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorklistHandler_CreateProject checks body decoding and validation output.
func TestWorklistHandler_CreateProject(t *testing.T) {
	created := &models.Project{ID: uuid.New(), ClientName: "Acme", ProjectName: "Lease", Status: models.StatusActive}

	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name:        "success - numeric hours",
			body:        `{"client_name": "Acme", "project_name": "Lease", "estimated_hours": 8}`,
			contentType: "application/json; charset=utf-8",
			setupMock: func(m *MockService) {
				m.On("CreateProject", mock.Anything, service.ProjectInput{
					ClientName:     "Acme",
					ProjectName:    "Lease",
					EstimatedHours: "8",
				}).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "validation errors",
			body:        `{"estimated_hours": "lots"}`,
			contentType: "application/json",
			setupMock: func(m *MockService) {
				m.On("CreateProject", mock.Anything, mock.Anything).Return(nil, service.NewValidationErrors([]service.FieldError{
					{Field: "client_name", Message: "Client name is required."},
					{Field: "estimated_hours", Message: "Estimated hours must be a number."},
				}))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong content type",
			body:           `client_name=Acme`,
			contentType:    "application/x-www-form-urlencoded",
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "malformed json",
			body:           `{"client_name": `,
			contentType:    "application/json",
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "hours of the wrong type",
			body:           `{"client_name": "Acme", "estimated_hours": true}`,
			contentType:    "application/json",
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := do(t, newRouter(mockService), http.MethodPost, "/projects/new", tt.contentType, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorklistHandler_ValidationDetails checks the shape of a 400 body.
func TestWorklistHandler_ValidationDetails(t *testing.T) {
	mockService := new(MockService)
	mockService.On("CreateTask", mock.Anything, mock.Anything).Return(nil, service.NewValidationErrors([]service.FieldError{
		{Field: "target_name", Message: "Target name is required."},
		{Field: "due_date", Message: "Due date is required."},
	}))

	w := do(t, newRouter(mockService), http.MethodPost, "/tasks/new", "application/json", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, service.CodeValidation, body["error"])
	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Target name is required.", "Due date is required."}, details["errors"])
	assert.Equal(t, map[string]any{
		"target_name": "Target name is required.",
		"due_date":    "Due date is required.",
	}, details["fields"])
}

// TestWorklistHandler_SnoozeTask checks where the day count is read from.
func TestWorklistHandler_SnoozeTask(t *testing.T) {
	taskID := uuid.New()
	snoozed := &models.Task{ID: taskID}

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		days        int
	}{
		{name: "query", target: "?days=5", days: 5},
		{name: "json body", contentType: "application/json", body: `{"days": 3}`, days: 3},
		{name: "string in body", contentType: "application/json", body: `{"days": "4"}`, days: 4},
		{name: "query wins", target: "?days=2", contentType: "application/json", body: `{"days": 9}`, days: 2},
		{name: "missing", days: 0},
		{name: "garbage", target: "?days=soon", days: 0},
		{name: "overflow in query", target: "?days=99999999999999999999", days: math.MaxInt},
		{name: "overflow in body", contentType: "application/json", body: `{"days": 99999999999999999999}`, days: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("SnoozeTask", mock.Anything, taskID, tt.days).Return(snoozed, nil)

			w := do(t, newRouter(mockService), http.MethodPost,
				"/tasks/"+taskID.String()+"/snooze"+tt.target, tt.contentType, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorklistHandler_ArchiveProject checks the optional hours body.
func TestWorklistHandler_ArchiveProject(t *testing.T) {
	projectID := uuid.New()
	archived := &models.Project{ID: projectID, Status: models.StatusArchived}

	tests := []struct {
		name        string
		contentType string
		body        string
		hours       string
	}{
		{name: "no body", hours: ""},
		{name: "number", contentType: "application/json", body: `{"actual_hours": 12.25}`, hours: "12.25"},
		{name: "string", contentType: "application/json", body: `{"actual_hours": "abc"}`, hours: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("ArchiveProject", mock.Anything, projectID, tt.hours).Return(archived, nil)

			w := do(t, newRouter(mockService), http.MethodPost,
				"/projects/"+projectID.String()+"/archive", tt.contentType, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorklistHandler_InvalidID checks that malformed ids are not found.
func TestWorklistHandler_InvalidID(t *testing.T) {
	mockService := new(MockService)
	router := newRouter(mockService)

	for _, target := range []string{
		"/projects/42",
		"/projects/" + uuid.Nil.String(),
		"/tasks/not-a-uuid",
	} {
		w := do(t, router, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
	mockService.AssertNotCalled(t, "GetProjectDetail", mock.Anything, mock.Anything)
}

// TestWorklistHandler_ListProjects checks that query parameters reach the service.
func TestWorklistHandler_ListProjects(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ListProjects", mock.Anything, worklist.ListQuery{
		Priority:  "high",
		Attorney:  "Smith",
		SortBy:    worklist.SortStaleness,
		SortOrder: worklist.OrderDesc,
	}).Return(&service.ProjectList{Projects: []worklist.Entry{}}, nil)

	w := do(t, newRouter(mockService), http.MethodGet,
		"/projects/?priority=high&attorney=Smith&sort_by=staleness&sort_order=desc", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "projects")
	assert.Contains(t, body, "choices")
	mockService.AssertExpectations(t)
}

// TestWorklistHandler_ListTasks checks the completed flag.
func TestWorklistHandler_ListTasks(t *testing.T) {
	tests := []struct {
		query     string
		completed bool
	}{
		{"", false},
		{"?completed=true", true},
		{"?completed=1", true},
		{"?completed=maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("ListTasks", mock.Anything, tt.completed).Return([]service.TaskItem{}, nil)

			w := do(t, newRouter(mockService), http.MethodGet, "/tasks/"+tt.query, "", "")

			assert.Equal(t, http.StatusOK, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestWorklistHandler_Export checks the CSV attachment headers.
func TestWorklistHandler_Export(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ExportCSV", mock.Anything).
		Return("worklist_2026-05-11.csv", []byte("Client,Project\r\nAcme,Lease\r\n"), nil)

	w := do(t, newRouter(mockService), http.MethodGet, "/export/", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="worklist_2026-05-11.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Client,Project\r\nAcme,Lease\r\n", w.Body.String())
}

// TestWorklistHandler_PurgeProject checks the admin delete route.
func TestWorklistHandler_PurgeProject(t *testing.T) {
	projectID := uuid.New()
	mockService := new(MockService)
	mockService.On("PurgeProject", mock.Anything, projectID).Return(nil)

	w := do(t, newRouter(mockService), http.MethodDelete, "/admin/projects/"+projectID.String()+"/purge", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, projectID.String(), body["id"])
	assert.Equal(t, "purged", body["status"])

	w = do(t, newRouter(mockService), http.MethodPost, "/admin/projects/"+projectID.String()+"/purge", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
