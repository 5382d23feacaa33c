package repository

import (
	"context"
	"errors"

	"github.com/templatehub/backend/internal/template"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("template not found")

// Filter is the queryable subset of template fields. Zero values are ignored.
type Filter struct {
	Type      string
	IsPublic  *bool
	CreatedBy string
	Tag       string
	Query     string // free-text search over name, description, tags
}

// Repository provides template persistence operations.
type Repository interface {
	Insert(ctx context.Context, t *template.Template) (*template.Template, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*template.Template, error)
	Replace(ctx context.Context, t *template.Template) (*template.Template, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[template.Template], error)
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// text index backing free-text search
	idx := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}}}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, t *template.Template) (*template.Template, error) {
	res, err := m.col.InsertOne(ctx, t)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return t, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*template.Template, error) {
	var t template.Template
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (m *MongoRepo) Replace(ctx context.Context, t *template.Template) (*template.Template, error) {
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return t, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[template.Template], error) {
	opts = opts.Normalize()
	query := bson.M{}
	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.IsPublic != nil {
		query["isPublic"] = *f.IsPublic
	}
	if f.CreatedBy != "" {
		query["createdBy"] = f.CreatedBy
	}
	if f.Tag != "" {
		query["tags"] = f.Tag
	}
	if f.Query != "" {
		query["$text"] = bson.M{"$search": f.Query}
	}

	total, err := m.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSkip(opts.Skip()).
		SetLimit(opts.Limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []template.Template{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return pagination.New(docs, total, opts), nil
}

var _ Repository = (*MongoRepo)(nil)
