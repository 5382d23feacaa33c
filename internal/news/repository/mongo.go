package repository

import (
	"context"
	"errors"

	"github.com/templatehub/backend/internal/news"
	"github.com/templatehub/backend/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("news article not found")

// Filter is the queryable subset of news fields. Zero values are ignored.
type Filter struct {
	Category string
	Author   string
	Title    string // exact title match, used by the importer for dedupe
	Query    string // free-text search over title, description, content
}

// Repository provides news persistence operations.
type Repository interface {
	Insert(ctx context.Context, a *news.Article) (*news.Article, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*news.Article, error)
	Replace(ctx context.Context, a *news.Article) (*news.Article, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[news.Article], error)
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}, {Key: "content", Value: "text"}}}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, a *news.Article) (*news.Article, error) {
	res, err := m.col.InsertOne(ctx, a)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*news.Article, error) {
	var a news.Article
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (m *MongoRepo) Replace(ctx context.Context, a *news.Article) (*news.Article, error) {
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return a, nil
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

func (m *MongoRepo) FindPage(ctx context.Context, f Filter, opts pagination.Options) (*pagination.Page[news.Article], error) {
	opts = opts.Normalize()
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Author != "" {
		query["author"] = f.Author
	}
	if f.Title != "" {
		query["title"] = f.Title
	}
	if f.Query != "" {
		query["$text"] = bson.M{"$search": f.Query}
	}

	total, err := m.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	// articles list newest publication first
	findOpts := options.Find().
		SetSkip(opts.Skip()).
		SetLimit(opts.Limit).
		SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	cur, err := m.col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []news.Article{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return pagination.New(docs, total, opts), nil
}

var _ Repository = (*MongoRepo)(nil)
