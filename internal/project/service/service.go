package service

import (
	"context"
	"errors"
	"time"

	"github.com/templatehub/backend/internal/project"
	"github.com/templatehub/backend/internal/project/repository"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service wraps the project repository with business rules: input validation
// before any write, identifier checks, date-ordering enforcement and error
// translation.
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// FindAll returns one page of projects matching the filter, newest first.
func (s *Service) FindAll(ctx context.Context, f repository.Filter, opts pagination.Options) (*pagination.Page[project.Project], error) {
	page, err := s.repo.FindPage(ctx, f, opts)
	if err != nil {
		return nil, apperr.Internal("Error fetching projects", err)
	}
	return page, nil
}

// FindActive returns one page of projects still in flight (planning or
// in-progress).
func (s *Service) FindActive(ctx context.Context, opts pagination.Options) (*pagination.Page[project.Project], error) {
	return s.FindAll(ctx, repository.Filter{Statuses: []string{project.StatusPlanning, project.StatusInProgress}}, opts)
}

func (s *Service) FindByID(ctx context.Context, id string) (*project.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("Invalid project ID")
	}
	p, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Error fetching project", err)
	}
	return p, nil
}

// Create validates the payload against the schema and persists a new project.
// Writes with endDate < startDate are rejected, nothing is persisted.
func (s *Service) Create(ctx context.Context, in *validation.ProjectInput) (*project.Project, error) {
	if verr := validation.ValidateProject(in); verr != nil {
		return nil, verr
	}
	now := time.Now().UTC()
	p := &project.Project{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		EndDate:     in.EndDate,
		Owner:       in.Owner,
		Team:        in.Team,
		Tasks:       tasksFromInput(in.Tasks),
		Tags:        in.Tags,
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	p.ApplyDefaults(now)
	if err := p.BeforeWrite(now); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, apperr.Internal("Error creating project", err)
	}
	return created, nil
}

// Update merges the provided fields into the stored document, revalidates
// (including date ordering on the merged result) and persists.
func (s *Service) Update(ctx context.Context, id string, in *validation.ProjectUpdate) (*project.Project, error) {
	if verr := validation.ValidateProjectUpdate(in); verr != nil {
		return nil, verr
	}
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if in.Owner != nil {
		p.Owner = *in.Owner
	}
	if in.Team != nil {
		p.Team = in.Team
	}
	if in.Tasks != nil {
		p.Tasks = tasksFromInput(in.Tasks)
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if err := p.BeforeWrite(time.Now().UTC()); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	updated, err := s.repo.Replace(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Error updating project", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.InvalidID("Invalid project ID")
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Project not found")
		}
		return apperr.Internal("Error deleting project", err)
	}
	return nil
}

// AddTask appends a task to the project's embedded task list and persists.
// This is a read-modify-write on a single document; concurrent additions to
// the same project may race and lose one update.
func (s *Service) AddTask(ctx context.Context, projectID string, in *validation.TaskInput) (*project.Project, error) {
	if verr := validation.ValidateTask(in); verr != nil {
		return nil, verr
	}
	p, err := s.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
	}
	if task.Status == "" {
		task.Status = project.TaskTodo
	}
	p.Tasks = append(p.Tasks, task)
	if err := p.BeforeWrite(time.Now().UTC()); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	updated, err := s.repo.Replace(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, apperr.Internal("Error adding task to project", err)
	}
	return updated, nil
}

func tasksFromInput(in []validation.TaskInput) []project.Task {
	if in == nil {
		return nil
	}
	out := make([]project.Task, 0, len(in))
	for _, t := range in {
		out = append(out, project.Task{
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			AssignedTo:  t.AssignedTo,
			DueDate:     t.DueDate,
		})
	}
	return out
}
