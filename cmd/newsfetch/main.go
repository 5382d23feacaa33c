package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/templatehub/backend/internal/config"
	"github.com/templatehub/backend/internal/database"
	"github.com/templatehub/backend/internal/news/repository"
	"github.com/templatehub/backend/internal/news/service"
	"github.com/templatehub/backend/internal/newsfeed"
	"github.com/templatehub/backend/pkg/logger"
)

// One-shot news importer: fetches the current headlines for one category and
// stores the articles that are not yet in the collection. Meant to run from
// cron or a manual invocation.
func main() {
	category := flag.String("category", "technology", "headlines category to import")
	country := flag.String("country", "", "country code (defaults to NEWS_API_COUNTRY)")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.News.APIKey == "" {
		logger.Fatalf("NEWS_API_KEY is not set")
	}
	if *country == "" {
		*country = cfg.News.Country
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("cannot connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := repository.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection("news"))
	svc := service.New(repo)
	feed := newsfeed.NewClient(cfg.News.BaseURL, cfg.News.APIKey)

	res, err := newsfeed.NewImporter(feed, repo, svc).Run(ctx, *country, *category)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}
	logger.Infof("import done: fetched=%d imported=%d skipped=%d", res.Fetched, res.Imported, res.Skipped)
}
