package project

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusOnHold     = "on-hold"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in-progress"
	TaskDone       = "done"
)

// ErrEndBeforeStart is returned from the pre-write hook when a project's end
// date precedes its start date; the write is rejected, never coerced.
var ErrEndBeforeStart = errors.New("End date cannot be before start date")

// Task is a work item embedded in a project document.
type Task struct {
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Status      string     `bson:"status" json:"status"`
	AssignedTo  string     `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	DueDate     *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
}

// Metadata mirrors the document-level timestamps kept alongside the
// server-maintained createdAt/updatedAt pair.
type Metadata struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Project is the persistent project document.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Owner       string             `bson:"owner" json:"owner"`
	Team        []string           `bson:"team" json:"team"`
	Tasks       []Task             `bson:"tasks" json:"tasks"`
	Tags        []string           `bson:"tags" json:"tags"`
	Metadata    Metadata           `bson:"metadata" json:"metadata"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Duration returns the project length in whole days, rounding up, or nil when
// either date is absent.
func (p Project) Duration() *int {
	if p.StartDate.IsZero() || p.EndDate == nil {
		return nil
	}
	days := int(math.Ceil(p.EndDate.Sub(p.StartDate).Hours() / 24))
	return &days
}

// MarshalJSON includes the derived duration attribute.
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	return json.Marshal(struct {
		alias
		Duration *int `json:"duration,omitempty"`
	}{alias(p), p.Duration()})
}

// ApplyDefaults fills server-assigned defaults on a new document.
func (p *Project) ApplyDefaults(now time.Time) {
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if p.StartDate.IsZero() {
		p.StartDate = now
	}
	if p.Team == nil {
		p.Team = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	for i := range p.Tasks {
		if p.Tasks[i].Status == "" {
			p.Tasks[i].Status = TaskTodo
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.Metadata.CreatedAt.IsZero() {
		p.Metadata.CreatedAt = now
	}
}

// BeforeWrite runs unconditionally before every persist: it refreshes the
// update timestamps and rejects writes where endDate < startDate.
func (p *Project) BeforeWrite(now time.Time) error {
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return ErrEndBeforeStart
	}
	p.UpdatedAt = now
	p.Metadata.UpdatedAt = now
	for i := range p.Tasks {
		if p.Tasks[i].Status == "" {
			p.Tasks[i].Status = TaskTodo
		}
	}
	return nil
}
