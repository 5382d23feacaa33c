package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/templatehub/backend/pkg/apperr"
)

// Schema validation for incoming payloads. Pure: data in, cleaned data or a
// structured error out. Unknown JSON fields are dropped by the typed binding
// before these checks run. All violations are collected, not just the first.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report field names by their json tag so error paths match the wire shape
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(projectInputDates, ProjectInput{})
	v.RegisterStructValidation(projectUpdateDates, ProjectUpdate{})
	return v
}

// TemplateInput is the accepted shape for template creation.
type TemplateInput struct {
	Name        string                 `json:"name" validate:"required,min=3,max=100"`
	Description string                 `json:"description" validate:"omitempty,max=500"`
	Type        string                 `json:"type" validate:"required,oneof=document presentation spreadsheet design"`
	Tags        []string               `json:"tags"`
	IsPublic    *bool                  `json:"isPublic"`
	CreatedBy   string                 `json:"createdBy" validate:"required"`
	Content     map[string]interface{} `json:"content"`
}

// TemplateUpdate carries a partial template update; nil fields are untouched.
type TemplateUpdate struct {
	Name        *string                `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string                `json:"description" validate:"omitempty,max=500"`
	Type        *string                `json:"type" validate:"omitempty,oneof=document presentation spreadsheet design"`
	Tags        []string               `json:"tags"`
	IsPublic    *bool                  `json:"isPublic"`
	Content     map[string]interface{} `json:"content"`
}

// TaskInput is an embedded task on a project.
type TaskInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	AssignedTo  string     `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
}

// ProjectInput is the accepted shape for project creation.
type ProjectInput struct {
	Title       string      `json:"title" validate:"required,min=3,max=100"`
	Description string      `json:"description" validate:"omitempty,max=500"`
	Status      string      `json:"status" validate:"omitempty,oneof=planning in-progress completed on-hold"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	Owner       string      `json:"owner" validate:"required"`
	Team        []string    `json:"team"`
	Tasks       []TaskInput `json:"tasks" validate:"omitempty,dive"`
	Tags        []string    `json:"tags"`
}

// ProjectUpdate carries a partial project update; nil fields are untouched.
type ProjectUpdate struct {
	Title       *string     `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string     `json:"description" validate:"omitempty,max=500"`
	Status      *string     `json:"status" validate:"omitempty,oneof=planning in-progress completed on-hold"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	Owner       *string     `json:"owner" validate:"omitempty,min=1"`
	Team        []string    `json:"team"`
	Tasks       []TaskInput `json:"tasks" validate:"omitempty,dive"`
	Tags        []string    `json:"tags"`
}

// NewsInput is the accepted shape for news creation.
type NewsInput struct {
	Title       string     `json:"title" validate:"required,min=5,max=200"`
	Description string     `json:"description" validate:"required,min=10,max=500"`
	Content     string     `json:"content" validate:"required,min=20"`
	Author      string     `json:"author" validate:"required"`
	Category    string     `json:"category" validate:"required,oneof=technology politics sports entertainment business health"`
	PublishedAt *time.Time `json:"publishedAt"`
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
}

// NewsUpdate carries a partial news update; nil fields are untouched.
type NewsUpdate struct {
	Title       *string    `json:"title" validate:"omitempty,min=5,max=200"`
	Description *string    `json:"description" validate:"omitempty,min=10,max=500"`
	Content     *string    `json:"content" validate:"omitempty,min=20"`
	Author      *string    `json:"author" validate:"omitempty,min=1"`
	Category    *string    `json:"category" validate:"omitempty,oneof=technology politics sports entertainment business health"`
	PublishedAt *time.Time `json:"publishedAt"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
}

func projectInputDates(sl validator.StructLevel) {
	in := sl.Current().Interface().(ProjectInput)
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", "dateorder", "")
	}
}

func projectUpdateDates(sl validator.StructLevel) {
	in := sl.Current().Interface().(ProjectUpdate)
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", "dateorder", "")
	}
}

// ValidateTemplate checks a template creation payload.
func ValidateTemplate(in *TemplateInput) *apperr.Error {
	return check(in, "template")
}

// ValidateTemplateUpdate checks the provided fields of a partial template update.
func ValidateTemplateUpdate(in *TemplateUpdate) *apperr.Error {
	return check(in, "template")
}

// ValidateProject checks a project creation payload, including date ordering.
func ValidateProject(in *ProjectInput) *apperr.Error {
	return check(in, "project")
}

// ValidateProjectUpdate checks the provided fields of a partial project update.
func ValidateProjectUpdate(in *ProjectUpdate) *apperr.Error {
	return check(in, "project")
}

// ValidateTask checks a task appended to a project.
func ValidateTask(in *TaskInput) *apperr.Error {
	return check(in, "task")
}

// ValidateNews checks a news creation payload.
func ValidateNews(in *NewsInput) *apperr.Error {
	return check(in, "news")
}

// ValidateNewsUpdate checks the provided fields of a partial news update.
func ValidateNewsUpdate(in *NewsUpdate) *apperr.Error {
	return check(in, "news")
}

func check(in interface{}, kind string) *apperr.Error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Internal("validation failed", err)
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return apperr.Validation(fmt.Sprintf("Invalid %s data", kind), fields)
}

// fieldPath strips the root struct name from the error namespace, leaving
// a json-style path like "tasks[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "dateorder":
		return "endDate cannot be before startDate"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
