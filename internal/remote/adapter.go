package remote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"ayushdesk/internal/directory"
	"ayushdesk/internal/domain"
	"ayushdesk/internal/platform/metrics"
	dErrors "ayushdesk/pkg/domain-errors"
)

// Adapter is the remote-first data source: every operation tries the
// upstream registry, then degrades to the local seed store. Read failures
// are swallowed and logged; write failures surface unless the local store
// can satisfy the write.
type Adapter struct {
	upstream Upstream
	local    *directory.Service
	stats    *directory.StatsProvider
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewAdapter wires the adapter. metrics may be nil; now defaults to
// time.Now.
func NewAdapter(upstream Upstream, local *directory.Service, stats *directory.StatsProvider, logger *slog.Logger, m *metrics.Metrics) *Adapter {
	return &Adapter{
		upstream: upstream,
		local:    local,
		stats:    stats,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source (tests).
func (a *Adapter) WithClock(now func() time.Time) *Adapter {
	a.now = now
	return a
}

// GetUsers serves one page of the user list: remote rows normalized and run
// through the same query pipeline, or the local projection when the
// upstream is unreachable.
func (a *Adapter) GetUsers(ctx context.Context, p directory.Params) (directory.Page[domain.UserSummary], error) {
	items, err := a.upstream.GetAllUsers(ctx)
	if err != nil {
		a.fallback(ctx, "get-all-users", err)
		return a.local.ListUsers(ctx, p)
	}
	now := a.now()
	summaries := make([]domain.UserSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, item.Normalize(now))
	}
	return directory.QueryUsers(summaries, p), nil
}

// GetUserStats returns the dashboard aggregate, preferring upstream stats.
// The local aggregate is a whole replacement, never merged with partial
// remote data.
func (a *Adapter) GetUserStats(ctx context.Context) (domain.DashboardMetrics, error) {
	stats, err := a.upstream.GetUserStats(ctx)
	if err != nil {
		a.fallback(ctx, "get-user-stats", err)
		return a.stats.Metrics(ctx), nil
	}
	return stats.Metrics(a.now()), nil
}

// GetUser returns one user's detail payload. When both the upstream call and
// the local lookup miss, the original upstream error surfaces.
func (a *Adapter) GetUser(ctx context.Context, id string) (UserDetail, error) {
	if id == "" {
		return UserDetail{}, dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	detail, err := a.upstream.GetUser(ctx, id)
	if err != nil {
		a.fallback(ctx, "get-user", err)
		localDetail, localErr := a.local.GetUser(ctx, id)
		if localErr != nil {
			if dErrors.HasCode(localErr, dErrors.CodeNotFound) {
				return UserDetail{}, dErrors.Wrap(err, dErrors.CodeUpstream, "user detail unavailable")
			}
			return UserDetail{}, localErr
		}
		profile, marshalErr := json.Marshal(localDetail.Profile)
		if marshalErr != nil {
			return UserDetail{}, dErrors.Wrap(marshalErr, dErrors.CodeInternal, "encode local profile")
		}
		return UserDetail{
			ID:               localDetail.ID,
			ProfessionalType: localDetail.ProfessionalType,
			Profile:          profile,
		}, nil
	}
	return detail.Normalize(id), nil
}

// DeleteUser is a write: the upstream deletion is attempted first and its
// success also removes the local copy. On upstream failure the local
// removal stands in, but if the id is absent there too the original
// upstream error surfaces.
func (a *Adapter) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	err := a.upstream.DeleteUser(ctx, id)
	if err == nil {
		// Keep the fallback store consistent with the upstream view; a
		// local miss here is not an error.
		if localErr := a.local.DeleteUser(ctx, id); localErr != nil && !dErrors.HasCode(localErr, dErrors.CodeNotFound) {
			return localErr
		}
		return nil
	}

	a.fallback(ctx, "delete-user", err)
	if localErr := a.local.DeleteUser(ctx, id); localErr != nil {
		if dErrors.HasCode(localErr, dErrors.CodeNotFound) {
			return dErrors.Wrap(err, dErrors.CodeUpstream, "delete failed upstream and user not found locally")
		}
		return localErr
	}
	return nil
}

// fallback logs a swallowed upstream failure. Non-fatal by policy: read
// paths never propagate upstream errors while local data can answer.
func (a *Adapter) fallback(ctx context.Context, operation string, err error) {
	a.metrics.ObserveFallback()
	a.logger.WarnContext(ctx, "falling back to local store",
		"operation", operation,
		"error", err.Error(),
	)
}

// IsUnavailable reports whether err represents an unreachable upstream as
// opposed to an upstream refusal.
func IsUnavailable(err error) bool {
	var se *StatusError
	return err != nil && !errors.As(err, &se)
}
