package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/templatehub/backend/internal/project/repository"
	"github.com/templatehub/backend/internal/project/service"
	"github.com/templatehub/backend/pkg/middleware"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler("test"))
	RegisterRoutes(r.Group("/api/projects"), service.New(repository.NewMemoryRepo()))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, r *gin.Engine, body string) map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/projects", body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestCreate_DefaultsApplied(t *testing.T) {
	r := newTestRouter()
	created := createProject(t, r, `{"title":"Website relaunch","owner":"alice"}`)
	require.Equal(t, "planning", created["status"])
	require.NotEmpty(t, created["startDate"])
	require.NotNil(t, created["tasks"])
}

func TestCreate_EndBeforeStartRejected(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/projects",
		`{"title":"Bad dates","owner":"bob","startDate":"2025-06-10T00:00:00Z","endDate":"2025-06-01T00:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddTaskRoute(t *testing.T) {
	r := newTestRouter()
	created := createProject(t, r, `{"title":"Docs overhaul","owner":"carol"}`)
	id := created["id"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/projects/"+id+"/tasks", `{"title":"write outline"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	tasks := updated["tasks"].([]interface{})
	require.Len(t, tasks, 1)
	task := tasks[0].(map[string]interface{})
	require.Equal(t, "todo", task["status"])
}

func TestActiveRoute(t *testing.T) {
	r := newTestRouter()
	createProject(t, r, `{"title":"Ongoing","owner":"dave","status":"in-progress"}`)
	createProject(t, r, `{"title":"Shipped","owner":"dave","status":"completed"}`)

	w := doJSON(t, r, http.MethodGet, "/api/projects/active", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, float64(1), page["totalDocs"])
}

func TestFilterByStatus(t *testing.T) {
	r := newTestRouter()
	createProject(t, r, `{"title":"Parked","owner":"erin","status":"on-hold"}`)
	createProject(t, r, `{"title":"Running","owner":"erin","status":"in-progress"}`)

	w := doJSON(t, r, http.MethodGet, "/api/projects?status=on-hold", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, float64(1), page["totalDocs"])
}

func TestDurationInResponse(t *testing.T) {
	r := newTestRouter()
	created := createProject(t, r,
		`{"title":"Sprint","owner":"frank","startDate":"2025-06-01T00:00:00Z","endDate":"2025-06-08T00:00:00Z"}`)
	require.Equal(t, float64(7), created["duration"])
}
