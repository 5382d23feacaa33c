package service

import (
	"context"
	"errors"
	"time"

	"github.com/templatehub/backend/internal/news"
	"github.com/templatehub/backend/internal/news/repository"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service wraps the news repository with business rules: input validation
// before any write, identifier checks and error translation.
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// FindAll returns one page of articles matching the filter, most recently
// published first.
func (s *Service) FindAll(ctx context.Context, f repository.Filter, opts pagination.Options) (*pagination.Page[news.Article], error) {
	page, err := s.repo.FindPage(ctx, f, opts)
	if err != nil {
		return nil, apperr.Internal("Error fetching news", err)
	}
	return page, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*news.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("Invalid news ID")
	}
	a, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("News article not found")
		}
		return nil, apperr.Internal("Error fetching news article", err)
	}
	return a, nil
}

// Create validates the payload against the schema and persists a new article.
func (s *Service) Create(ctx context.Context, in *validation.NewsInput) (*news.Article, error) {
	if verr := validation.ValidateNews(in); verr != nil {
		return nil, verr
	}
	now := time.Now().UTC()
	a := &news.Article{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Author:      in.Author,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}
	if in.PublishedAt != nil {
		a.PublishedAt = *in.PublishedAt
	}
	a.ApplyDefaults(now)
	if err := a.BeforeWrite(now); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	created, err := s.repo.Insert(ctx, a)
	if err != nil {
		return nil, apperr.Internal("Error creating news article", err)
	}
	return created, nil
}

// Update merges the provided fields into the stored document, revalidates and
// persists the result.
func (s *Service) Update(ctx context.Context, id string, in *validation.NewsUpdate) (*news.Article, error) {
	if verr := validation.ValidateNewsUpdate(in); verr != nil {
		return nil, verr
	}
	a, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.Author != nil {
		a.Author = *in.Author
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.PublishedAt != nil {
		a.PublishedAt = *in.PublishedAt
	}
	if in.ImageURL != nil {
		a.ImageURL = *in.ImageURL
	}
	if err := a.BeforeWrite(time.Now().UTC()); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	updated, err := s.repo.Replace(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("News article not found")
		}
		return nil, apperr.Internal("Error updating news article", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.InvalidID("Invalid news ID")
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("News article not found")
		}
		return apperr.Internal("Error deleting news article", err)
	}
	return nil
}
