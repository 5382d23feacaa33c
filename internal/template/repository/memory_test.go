package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templatehub/backend/internal/template"
	"github.com/templatehub/backend/pkg/pagination"
)

func seed(t *testing.T, m *MemoryRepo, docs ...template.Template) {
	t.Helper()
	for i := range docs {
		_, err := m.Insert(context.Background(), &docs[i])
		require.NoError(t, err)
	}
}

func TestMemoryRepo_FilterByTypeAndTag(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m,
		template.Template{Name: "Invoice", Type: "document", Tags: []string{"finance"}},
		template.Template{Name: "Deck", Type: "presentation", Tags: []string{"sales"}},
		template.Template{Name: "Ledger", Type: "spreadsheet", Tags: []string{"finance"}},
	)

	page, err := m.FindPage(context.Background(), Filter{Type: "document"}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalDocs)
	require.Equal(t, "Invoice", page.Docs[0].Name)

	page, err = m.FindPage(context.Background(), Filter{Tag: "finance"}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.TotalDocs)
}

func TestMemoryRepo_TextSearch(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m,
		template.Template{Name: "Invoice template", Type: "document"},
		template.Template{Name: "Deck", Description: "sales invoice walkthrough", Type: "presentation"},
		template.Template{Name: "Unrelated", Type: "design"},
	)

	page, err := m.FindPage(context.Background(), Filter{Query: "invoice"}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.TotalDocs)
}

func TestMemoryRepo_NewestFirst(t *testing.T) {
	m := NewMemoryRepo()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	seed(t, m,
		template.Template{Name: "old", Type: "document", CreatedAt: base},
		template.Template{Name: "new", Type: "document", CreatedAt: base.Add(time.Hour)},
	)

	page, err := m.FindPage(context.Background(), Filter{}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, "new", page.Docs[0].Name)
	require.Equal(t, "old", page.Docs[1].Name)
}

func TestMemoryRepo_ReplaceMissing(t *testing.T) {
	m := NewMemoryRepo()
	tmpl := template.Template{Name: "ghost", Type: "document"}
	_, err := m.Insert(context.Background(), &tmpl)
	require.NoError(t, err)
	require.NoError(t, m.Delete(context.Background(), tmpl.ID))

	_, err = m.Replace(context.Background(), &tmpl)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, m.Delete(context.Background(), tmpl.ID), ErrNotFound)
}
