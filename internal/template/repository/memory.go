package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/templatehub/backend/internal/template"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used by unit tests and as a fallback
// when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]template.Template
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]template.Template)}
}

func (m *MemoryRepo) Insert(ctx context.Context, t *template.Template) (*template.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	m.store[t.ID] = *t
	return t, nil
}

func (m *MemoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*template.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, t *template.Template) (*template.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[t.ID]; !ok {
		return nil, ErrNotFound
	}
	m.store[t.ID] = *t
	return t, nil
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

func (m *MemoryRepo) FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[template.Template], error) {
	opts = opts.Normalize()
	m.mu.RLock()
	matched := []template.Template{}
	for _, t := range m.store {
		if matches(t, f) {
			matched = append(matched, t)
		}
	}
	m.mu.RUnlock()

	// newest-first, id as tiebreaker for a stable order
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
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

func matches(t template.Template, f Filter) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.IsPublic != nil && t.IsPublic != *f.IsPublic {
		return false
	}
	if f.CreatedBy != "" && t.CreatedBy != f.CreatedBy {
		return false
	}
	if f.Tag != "" && !contains(t.Tags, f.Tag) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		hay := strings.ToLower(t.Name + " " + t.Description + " " + strings.Join(t.Tags, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

var _ Repository = (*MemoryRepo)(nil)
