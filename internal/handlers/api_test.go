package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/nomindnick/worktracker-v1/internal/repository/inmemory"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	now := time.Date(2026, 5, 11, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	svc := service.NewWorklistService(inmemory.New(),
		service.WithClock(tick),
		service.WithLocation(time.UTC))
	return newRouter(svc)
}

func field(t *testing.T, body map[string]any, path ...string) any {
	t.Helper()
	var cur any = body
	for _, key := range path {
		m, ok := cur.(map[string]any)
		require.True(t, ok, "no object at %q", key)
		cur = m[key]
	}
	return cur
}

// TestAPI_ProjectLifecycle drives a project through the HTTP surface.
func TestAPI_ProjectLifecycle(t *testing.T) {
	api := newAPI(t)

	w := do(t, api, http.MethodPost, "/projects/new", "application/json",
		`{"client_name": "Acme", "project_name": "Lease", "assigned_attorneys": "Smith", "initial_status": "Opened file"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := field(t, decodeBody(t, w), "project", "id").(string)

	w = do(t, api, http.MethodPost, "/tasks/new", "application/json",
		fmt.Sprintf(`{"project_id": %q, "target_name": "Client", "due_date": "2026-05-12", "priority": "high"}`, projectID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decodeBody(t, w)
	taskID := field(t, task, "task", "id").(string)
	assert.Equal(t, "2026-05-12", field(t, task, "task", "due_date"))
	assert.Equal(t, "self", field(t, task, "task", "target_type"))

	w = do(t, api, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	tomorrow := field(t, decodeBody(t, w), "dashboard", "due_tomorrow").([]any)
	require.Len(t, tomorrow, 1)

	w = do(t, api, http.MethodPost, "/tasks/"+taskID+"/snooze?days=3", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-05-15", field(t, decodeBody(t, w), "task", "due_date"))

	w = do(t, api, http.MethodPost, "/milestones/new", "application/json",
		fmt.Sprintf(`{"project_id": %q, "name": "Signing", "date": "2026-06-01"}`, projectID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, api, http.MethodPost, "/updates/new", "application/json",
		fmt.Sprintf(`{"project_id": %q, "notes": "Draft sent"}`, projectID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, api, http.MethodGet, "/projects/"+projectID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)
	assert.Len(t, field(t, detail, "detail", "status_updates"), 2)
	assert.Equal(t, "Draft sent", field(t, detail, "detail", "status_preview", "text"))
	assert.Equal(t, "2026-06-01", field(t, detail, "detail", "next_milestone", "date"))

	w = do(t, api, http.MethodGet, "/export/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Acme,Lease"))

	w = do(t, api, http.MethodPost, "/projects/"+projectID+"/archive", "application/json", `{"actual_hours": "6.5"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "archived", field(t, decodeBody(t, w), "project", "status"))

	w = do(t, api, http.MethodPost, "/tasks/"+taskID+"/complete", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, service.CodeProjectArchived, decodeBody(t, w)["error"])

	w = do(t, api, http.MethodPost, "/projects/"+projectID+"/archive", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, api, http.MethodGet, "/projects/archived", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["projects"], 1)

	w = do(t, api, http.MethodDelete, "/admin/projects/"+projectID+"/purge", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, api, http.MethodGet, "/tasks/"+taskID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestAPI_ValidationIsAggregated checks that a bad form reports every field.
func TestAPI_ValidationIsAggregated(t *testing.T) {
	api := newAPI(t)

	w := do(t, api, http.MethodPost, "/projects/new", "application/json",
		`{"client_name": "", "project_name": "", "priority": "urgent", "estimated_hours": -2}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error   string `json:"error"`
		Details struct {
			Errors []string          `json:"errors"`
			Fields map[string]string `json:"fields"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, service.CodeValidation, body.Error)
	assert.Len(t, body.Details.Errors, 4)
	assert.Equal(t, "Estimated hours must be a non-negative number.", body.Details.Fields["estimated_hours"])

	w = do(t, api, http.MethodGet, "/projects/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["projects"])
}

// TestAPI_ChildOfMissingProject checks that new children need an active project.
func TestAPI_ChildOfMissingProject(t *testing.T) {
	api := newAPI(t)

	for _, tc := range []struct{ target, body string }{
		{"/tasks/new", `{"project_id": "nope", "target_name": "x", "due_date": "2026-05-12"}`},
		{"/milestones/new", `{"project_id": "", "name": "x", "date": "2026-05-12"}`},
		{"/updates/new", `{"project_id": "00000000-0000-0000-0000-000000000001", "notes": "x"}`},
	} {
		w := do(t, api, http.MethodPost, tc.target, "application/json", tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.target)
	}
}
