package repository

import (
	"context"
	"errors"

	"github.com/templatehub/backend/internal/project"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("project not found")

// Filter is the queryable subset of project fields. Zero values are ignored.
type Filter struct {
	Status   string
	Statuses []string // status-set filter, used for the active-projects view
	Owner    string
	Tag      string
	Query    string // free-text search over title, description, tags
}

// Repository provides project persistence operations.
type Repository interface {
	Insert(ctx context.Context, p *project.Project) (*project.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*project.Project, error)
	Replace(ctx context.Context, p *project.Project) (*project.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[project.Project], error)
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}}}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, p *project.Project) (*project.Project, error) {
	res, err := m.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*project.Project, error) {
	var p project.Project
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepo) Replace(ctx context.Context, p *project.Project) (*project.Project, error) {
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return p, nil
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

func (m *MongoRepo) FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[project.Project], error) {
	opts = opts.Normalize()
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if len(f.Statuses) > 0 {
		query["status"] = bson.M{"$in": f.Statuses}
	}
	if f.Owner != "" {
		query["owner"] = f.Owner
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

	docs := []project.Project{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return pagination.New(docs, total, opts), nil
}

var _ Repository = (*MongoRepo)(nil)
