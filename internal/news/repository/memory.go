package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/templatehub/backend/internal/news"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used by unit tests and as a fallback
// when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]news.Article
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]news.Article)}
}

func (m *MemoryRepo) Insert(ctx context.Context, a *news.Article) (*news.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	m.store[a.ID] = *a
	return a, nil
}

func (m *MemoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*news.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, a *news.Article) (*news.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; !ok {
		return nil, ErrNotFound
	}
	m.store[a.ID] = *a
	return a, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[news.Article], error) {
	opts = opts.Normalize()
	m.mu.RLock()
	matched := []news.Article{}
	for _, a := range m.store {
		if matches(a, f) {
			matched = append(matched, a)
		}
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PublishedAt.Equal(matched[j].PublishedAt) {
			return matched[i].PublishedAt.After(matched[j].PublishedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	total := int64(len(matched))
	start := opts.Skip()
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return pagination.New(matched[start:end], total, opts), nil
}

func matches(a news.Article, f Filter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Author != "" && a.Author != f.Author {
		return false
	}
	if f.Title != "" && a.Title != f.Title {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		hay := strings.ToLower(a.Title + " " + a.Description + " " + a.Content)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

var _ Repository = (*MemoryRepo)(nil)
