package news

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article categories.
const (
	CategoryTechnology    = "technology"
	CategoryPolitics      = "politics"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryBusiness      = "business"
	CategoryHealth        = "health"
)

// Article is the persistent news document.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Content     string             `bson:"content" json:"content"`
	Author      string             `bson:"author" json:"author"`
	Category    string             `bson:"category" json:"category"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ApplyDefaults fills server-assigned defaults on a new document.
func (a *Article) ApplyDefaults(now time.Time) {
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
}

// BeforeWrite runs unconditionally before every persist and refreshes the
// update timestamp.
func (a *Article) BeforeWrite(now time.Time) error {
	a.UpdatedAt = now
	return nil
}
