package service

import (
	"context"
	"errors"
	"time"

	"github.com/templatehub/backend/internal/template"
	"github.com/templatehub/backend/internal/template/repository"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service wraps the template repository with business rules: input validation
// before any write, identifier checks and error translation.
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// FindAll returns one page of templates matching the filter, newest first.
func (s *Service) FindAll(ctx context.Context, f repository.Filter, opts pagination.Options) (*pagination.Page[template.Template], error) {
	page, err := s.repo.FindPage(ctx, f, opts)
	if err != nil {
		return nil, apperr.Internal("Error fetching templates", err)
	}
	return page, nil
}

// FindPublic returns one page of public templates.
func (s *Service) FindPublic(ctx context.Context, opts pagination.Options) (*pagination.Page[template.Template], error) {
	public := true
	return s.FindAll(ctx, repository.Filter{IsPublic: &public}, opts)
}

func (s *Service) FindByID(ctx context.Context, id string) (*template.Template, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("Invalid template ID")
	}
	t, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Template not found")
		}
		return nil, apperr.Internal("Error fetching template", err)
	}
	return t, nil
}

// Create validates the payload against the schema and persists a new template.
func (s *Service) Create(ctx context.Context, in *validation.TemplateInput) (*template.Template, error) {
	if verr := validation.ValidateTemplate(in); verr != nil {
		return nil, verr
	}
	now := time.Now().UTC()
	t := &template.Template{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Tags:        in.Tags,
		CreatedBy:   in.CreatedBy,
		Content:     in.Content,
	}
	if in.IsPublic != nil {
		t.IsPublic = *in.IsPublic
	}
	t.ApplyDefaults(now)
	if err := t.BeforeWrite(now); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	created, err := s.repo.Insert(ctx, t)
	if err != nil {
		return nil, apperr.Internal("Error creating template", err)
	}
	return created, nil
}

// Update merges the provided fields into the stored document, revalidates and
// persists the result.
func (s *Service) Update(ctx context.Context, id string, in *validation.TemplateUpdate) (*template.Template, error) {
	if verr := validation.ValidateTemplateUpdate(in); verr != nil {
		return nil, verr
	}
	t, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Tags != nil {
		t.Tags = in.Tags
	}
	if in.IsPublic != nil {
		t.IsPublic = *in.IsPublic
	}
	if in.Content != nil {
		t.Content = in.Content
	}
	if err := t.BeforeWrite(time.Now().UTC()); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	updated, err := s.repo.Replace(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Template not found")
		}
		return nil, apperr.Internal("Error updating template", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.InvalidID("Invalid template ID")
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Template not found")
		}
		return apperr.Internal("Error deleting template", err)
	}
	return nil
}
