package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templatehub/backend/internal/news/repository"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
)

func validInput() *validation.NewsInput {
	return &validation.NewsInput{
		Title:       "Markets rally on rate cut",
		Description: "Stocks climbed after the announcement.",
		Content:     "Stocks climbed sharply after the central bank announcement on Tuesday.",
		Author:      "Reuters",
		Category:    "business",
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.False(t, created.PublishedAt.IsZero())

	got, err := svc.FindByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
}

func TestCreate_InvalidCategory(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	in := validInput()
	in.Category = "weather"
	_, err := svc.Create(context.Background(), in)
	require.Equal(t, 400, apperr.StatusOf(err))
}

func TestCreate_KeepsExplicitPublishedAt(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ts := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	in := validInput()
	in.PublishedAt = &ts
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.True(t, created.PublishedAt.Equal(ts))
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	cat := "politics"
	updated, err := svc.Update(ctx, created.ID.Hex(), &validation.NewsUpdate{Category: &cat})
	require.NoError(t, err)
	require.Equal(t, "politics", updated.Category)
	require.Equal(t, created.Title, updated.Title)
}

func TestFindAll_FilterByCategory(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	other := validInput()
	other.Title = "Championship final draws record crowd"
	other.Category = "sports"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	page, err := svc.FindAll(ctx, repository.Filter{Category: "sports"}, pagination.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalDocs)
	require.Equal(t, "sports", page.Docs[0].Category)
}

func TestDelete_Idempotency(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	require.Equal(t, 404, apperr.StatusOf(svc.Delete(ctx, created.ID.Hex())))
	require.Equal(t, 400, apperr.StatusOf(svc.Delete(ctx, "bogus")))
}
