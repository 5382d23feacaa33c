package newsfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/templatehub/backend/internal/news/repository"
	"github.com/templatehub/backend/internal/news/service"
	"github.com/templatehub/backend/pkg/pagination"
)

func feedServer(t *testing.T, articles []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/top-headlines", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.Equal(t, "us", r.URL.Query().Get("country"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "ok",
			"totalResults": len(articles),
			"articles":     articles,
		})
	}))
}

func goodArticle(title string) map[string]interface{} {
	return map[string]interface{}{
		"source":      map[string]string{"id": "reuters", "name": "Reuters"},
		"author":      "Jane Doe",
		"title":       title,
		"description": "Stocks climbed after the announcement.",
		"url":         "https://example.com/story",
		"urlToImage":  "https://example.com/chart.png",
		"publishedAt": "2025-04-02T09:30:00Z",
		"content":     "Stocks climbed sharply after the central bank announcement on Tuesday.",
	}
}

func TestClient_TopHeadlines(t *testing.T) {
	srv := feedServer(t, []map[string]interface{}{goodArticle("Markets rally on rate cut")})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	articles, err := client.TopHeadlines(context.Background(), "us", "business")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "Markets rally on rate cut", articles[0].Title)
	require.Equal(t, "Reuters", articles[0].Source.Name)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key")
	_, err := client.TopHeadlines(context.Background(), "us", "")
	require.Error(t, err)
}

func TestImporter_MapsAndPersists(t *testing.T) {
	srv := feedServer(t, []map[string]interface{}{goodArticle("Markets rally on rate cut")})
	defer srv.Close()

	repo := repository.NewMemoryRepo()
	imp := NewImporter(NewClient(srv.URL, "test-key"), repo, service.New(repo))

	res, err := imp.Run(context.Background(), "us", "business")
	require.NoError(t, err)
	require.Equal(t, 1, res.Fetched)
	require.Equal(t, 1, res.Imported)

	page, err := repo.FindPage(context.Background(), repository.Filter{}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalDocs)
	doc := page.Docs[0]
	require.Equal(t, "Markets rally on rate cut", doc.Title)
	require.Equal(t, "Jane Doe", doc.Author)
	require.Equal(t, "business", doc.Category)
	require.Equal(t, "https://example.com/chart.png", doc.ImageURL)
	require.Equal(t, 2025, doc.PublishedAt.Year())
}

func TestImporter_DedupesByTitle(t *testing.T) {
	srv := feedServer(t, []map[string]interface{}{goodArticle("Markets rally on rate cut")})
	defer srv.Close()

	repo := repository.NewMemoryRepo()
	imp := NewImporter(NewClient(srv.URL, "test-key"), repo, service.New(repo))

	_, err := imp.Run(context.Background(), "us", "business")
	require.NoError(t, err)

	res, err := imp.Run(context.Background(), "us", "business")
	require.NoError(t, err)
	require.Equal(t, 0, res.Imported)
	require.Equal(t, 1, res.Skipped)

	page, err := repo.FindPage(context.Background(), repository.Filter{}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalDocs)
}

func TestImporter_SkipsSparseArticles(t *testing.T) {
	sparse := map[string]interface{}{
		"source": map[string]string{"name": "Wire"},
		"title":  "Hi", // too short to pass validation
	}
	srv := feedServer(t, []map[string]interface{}{sparse, goodArticle("Championship final draws record crowd")})
	defer srv.Close()

	repo := repository.NewMemoryRepo()
	imp := NewImporter(NewClient(srv.URL, "test-key"), repo, service.New(repo))

	res, err := imp.Run(context.Background(), "us", "sports")
	require.NoError(t, err)
	require.Equal(t, 2, res.Fetched)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 1, res.Skipped)
}

func TestImporter_AuthorFallsBackToSource(t *testing.T) {
	a := goodArticle("Vaccine study shows promising results")
	a["author"] = ""
	srv := feedServer(t, []map[string]interface{}{a})
	defer srv.Close()

	repo := repository.NewMemoryRepo()
	imp := NewImporter(NewClient(srv.URL, "test-key"), repo, service.New(repo))

	_, err := imp.Run(context.Background(), "us", "health")
	require.NoError(t, err)

	page, err := repo.FindPage(context.Background(), repository.Filter{}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, "Reuters", page.Docs[0].Author)
}
