//go:build integration

package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayushdesk/internal/content"
	"ayushdesk/internal/domain"
	"ayushdesk/pkg/platform/sentinel"
	"ayushdesk/pkg/testutil/containers"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	store := content.NewPostgresStore(pg.DB)
	require.NoError(t, store.EnsureSchema(ctx))

	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	scheduled := now.Add(72 * time.Hour)

	older := domain.Announcement{
		ID: "a-1", Title: "Older", Message: "m", Audience: "ALL",
		Status: domain.AnnouncementPublished, CreatedAt: now.Add(-time.Hour),
	}
	newer := domain.Announcement{
		ID: "a-2", Title: "Newer", Message: "m", Audience: "DOCTORS",
		Status: domain.AnnouncementScheduled, CreatedAt: now, ScheduledFor: &scheduled,
	}
	require.NoError(t, store.InsertAnnouncement(ctx, older))
	require.NoError(t, store.InsertAnnouncement(ctx, newer))

	list, err := store.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a-2", list[0].ID, "listing is newest-first")
	require.NotNil(t, list[0].ScheduledFor)
	assert.True(t, list[0].ScheduledFor.Equal(scheduled))
	assert.Nil(t, list[1].ScheduledFor)

	newer.Title = "Renamed"
	updatedAt := now.Add(time.Minute)
	newer.UpdatedAt = &updatedAt
	require.NoError(t, store.UpdateAnnouncement(ctx, newer))

	got, err := store.GetAnnouncement(ctx, "a-2")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	require.NotNil(t, got.UpdatedAt)

	require.NoError(t, store.DeleteAnnouncement(ctx, "a-1"))
	_, err = store.GetAnnouncement(ctx, "a-1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.ErrorIs(t, store.DeleteAnnouncement(ctx, "a-1"), sentinel.ErrNotFound)
}

func TestPostgresStoreGallery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	store := content.NewPostgresStore(pg.DB)
	require.NoError(t, store.EnsureSchema(ctx))

	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	item := domain.GalleryItem{
		ID: "g-1", Title: "Camp", Description: "Day one", Category: "events",
		ImageURL: "https://img.example/1.jpg", CreatedAt: now,
	}
	require.NoError(t, store.InsertGalleryItem(ctx, item))

	item.Description = ""
	require.NoError(t, store.UpdateGalleryItem(ctx, item))

	got, err := store.GetGalleryItem(ctx, "g-1")
	require.NoError(t, err)
	assert.Empty(t, got.Description)

	assert.ErrorIs(t, store.UpdateGalleryItem(ctx, domain.GalleryItem{ID: "nope"}), sentinel.ErrNotFound)
}
