package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/templatehub/backend/internal/template/repository"
	"github.com/templatehub/backend/internal/template/service"
	"github.com/templatehub/backend/pkg/middleware"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler("test"))
	RegisterRoutes(r.Group("/api/templates"), service.New(repository.NewMemoryRepo()))
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

func TestCreateAndGet(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/templates", `{"name":"Invoice","type":"document","createdBy":"alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, false, created["isPublic"])

	w = doJSON(t, r, http.MethodGet, "/api/templates/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreate_ValidationErrorBody(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/templates", `{"name":"ab","type":"poster"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Message string `json:"message"`
			Status  int    `json:"status"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, http.StatusBadRequest, body.Error.Status)
	require.NotEmpty(t, body.Error.Details)
}

func TestGet_MalformedAndMissingID(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/templates/not-hex", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/templates/64a000000000000000000000", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_PageShape(t *testing.T) {
	r := newTestRouter()
	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/templates", `{"name":"Template doc","type":"document","createdBy":"bob"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/templates?page=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, float64(3), page["totalDocs"])
	require.Equal(t, float64(2), page["totalPages"])
	require.Equal(t, true, page["hasNextPage"])
	require.Equal(t, false, page["hasPrevPage"])
	require.Len(t, page["docs"], 2)
}

func TestPublicListing(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/templates", `{"name":"Shared deck","type":"presentation","createdBy":"carol","isPublic":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/templates", `{"name":"Private deck","type":"presentation","createdBy":"carol"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/templates/public", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, float64(1), page["totalDocs"])
}

func TestUpdateAndDelete(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/templates", `{"name":"Draft","type":"document","createdBy":"dave"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = doJSON(t, r, http.MethodPut, "/api/templates/"+id, `{"name":"Final draft"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "Final draft", updated["name"])

	w = doJSON(t, r, http.MethodDelete, "/api/templates/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/templates/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
