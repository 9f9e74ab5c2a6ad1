//go:build integration

package directory_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayushdesk/internal/directory"
	platformredis "ayushdesk/internal/platform/redis"
	"ayushdesk/pkg/testutil/containers"
)

func TestStatsProviderRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := directory.NewStore(base)
	svc := directory.NewService(store, logger, directory.WithLatency(directory.Latency{}))
	provider := directory.NewStatsProvider(svc, platformredis.NewFromClient(rc.Client), logger)

	first := provider.Metrics(ctx)
	assert.Equal(t, 36, first.TotalUsers)

	// A store mutation does not show through while the cache entry lives.
	require.NoError(t, svc.DeleteUser(ctx, "user-1"))
	cached := provider.Metrics(ctx)
	assert.Equal(t, 36, cached.TotalUsers)

	provider.Invalidate(ctx)
	fresh := provider.Metrics(ctx)
	assert.Equal(t, 35, fresh.TotalUsers)
}
