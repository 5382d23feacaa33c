package template

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template types supported by the frontend editors.
const (
	TypeDocument     = "document"
	TypePresentation = "presentation"
	TypeSpreadsheet  = "spreadsheet"
	TypeDesign       = "design"
)

// Template is the persistent template document.
type Template struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name        string                 `bson:"name" json:"name"`
	Description string                 `bson:"description,omitempty" json:"description,omitempty"`
	Type        string                 `bson:"type" json:"type"`
	Tags        []string               `bson:"tags" json:"tags"`
	IsPublic    bool                   `bson:"isPublic" json:"isPublic"`
	CreatedBy   string                 `bson:"createdBy" json:"createdBy"`
	Content     map[string]interface{} `bson:"content" json:"content"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// ApplyDefaults fills server-assigned defaults on a new document.
func (t *Template) ApplyDefaults(now time.Time) {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Content == nil {
		t.Content = map[string]interface{}{}
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
}

// BeforeWrite runs unconditionally before every persist and refreshes the
// update timestamp.
func (t *Template) BeforeWrite(now time.Time) error {
	t.UpdatedAt = now
	return nil
}
