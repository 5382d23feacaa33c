package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/templatehub/backend/internal/project"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used by unit tests and as a fallback
// when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]project.Project
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]project.Project)}
}

func (m *MemoryRepo) Insert(ctx context.Context, p *project.Project) (*project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.store[p.ID] = *p
	return p, nil
}

func (m *MemoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, p *project.Project) (*project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return nil, ErrNotFound
	}
	m.store[p.ID] = *p
	return p, nil
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

func (m *MemoryRepo) FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[project.Project], error) {
	opts = opts.Normalize()
	m.mu.RLock()
	matched := []project.Project{}
	for _, p := range m.store {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	m.mu.RUnlock()

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

func matches(p project.Project, f Filter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, p.Status) {
		return false
	}
	if f.Owner != "" && p.Owner != f.Owner {
		return false
	}
	if f.Tag != "" && !contains(p.Tags, f.Tag) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		hay := strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
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
