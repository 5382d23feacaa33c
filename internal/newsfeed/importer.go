package newsfeed

import (
	"context"
	"strings"
	"time"

	"github.com/templatehub/backend/internal/news"
	"github.com/templatehub/backend/internal/news/repository"
	"github.com/templatehub/backend/internal/news/service"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/logger"
	"github.com/templatehub/backend/pkg/pagination"
)

// feed categories that map straight onto article categories
var knownCategories = map[string]string{
	"technology":    news.CategoryTechnology,
	"politics":      news.CategoryPolitics,
	"sports":        news.CategorySports,
	"entertainment": news.CategoryEntertainment,
	"business":      news.CategoryBusiness,
	"health":        news.CategoryHealth,
}

// Result summarizes one import run.
type Result struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer pulls headlines from the feed client and persists the ones that
// pass validation and are not already stored.
type Importer struct {
	client *Client
	repo   repository.Repository
	svc    *service.Service
}

func NewImporter(client *Client, repo repository.Repository, svc *service.Service) *Importer {
	return &Importer{client: client, repo: repo, svc: svc}
}

// Run fetches the current headlines for one category and stores the new ones.
// Articles with a title already present in the collection are skipped, as are
// articles too sparse to pass input validation.
func (i *Importer) Run(ctx context.Context, country, category string) (*Result, error) {
	mapped, ok := knownCategories[category]
	if !ok {
		mapped = news.CategoryTechnology
	}
	articles, err := i.client.TopHeadlines(ctx, country, category)
	if err != nil {
		return nil, err
	}
	res := &Result{Fetched: len(articles)}
	for _, a := range articles {
		in := toInput(a, mapped)
		dup, err := i.exists(ctx, in.Title)
		if err != nil {
			return res, err
		}
		if dup {
			res.Skipped++
			continue
		}
		if _, err := i.svc.Create(ctx, in); err != nil {
			// sparse upstream entries fail validation; skip, don't abort
			logger.Warnf("skipping article %q: %v", in.Title, err)
			res.Skipped++
			continue
		}
		res.Imported++
	}
	return res, nil
}

func (i *Importer) exists(ctx context.Context, title string) (bool, error) {
	page, err := i.repo.FindPage(ctx, repository.Filter{Title: title}, pagination.Options{Page: 1, Limit: 1})
	if err != nil {
		return false, err
	}
	return page.TotalDocs > 0, nil
}

func toInput(a Article, category string) *validation.NewsInput {
	author := strings.TrimSpace(a.Author)
	if author == "" {
		author = a.Source.Name
	}
	if author == "" {
		author = "Unknown"
	}
	in := &validation.NewsInput{
		Title:       strings.TrimSpace(a.Title),
		Description: strings.TrimSpace(a.Description),
		Content:     strings.TrimSpace(a.Content),
		Author:      author,
		Category:    category,
		ImageURL:    a.URLToImage,
	}
	if in.Content == "" {
		in.Content = in.Description
	}
	if ts, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		in.PublishedAt = &ts
	}
	return in
}
