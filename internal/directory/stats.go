package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ayushdesk/internal/domain"
	platformredis "ayushdesk/internal/platform/redis"
)

const (
	statsCacheKey = "ayushdesk:stats"
	statsCacheTTL = 30 * time.Second
)

// StatsProvider computes the local dashboard aggregate, with an optional
// Redis cache in front. The aggregate is always computed whole; cached and
// freshly computed results are interchangeable, never merged.
type StatsProvider struct {
	service *Service
	cache   *platformredis.Client
	logger  *slog.Logger
}

// NewStatsProvider wires the provider. cache may be nil (no caching).
func NewStatsProvider(service *Service, cache *platformredis.Client, logger *slog.Logger) *StatsProvider {
	return &StatsProvider{service: service, cache: cache, logger: logger}
}

// Metrics returns the dashboard aggregate, serving from cache when possible.
// Cache failures degrade to a fresh computation, never to an error.
func (p *StatsProvider) Metrics(ctx context.Context) domain.DashboardMetrics {
	if p.cache != nil {
		if cached, ok := p.fromCache(ctx); ok {
			return cached
		}
	}
	m := p.service.LocalDashboardMetrics(ctx)
	p.toCache(ctx, m)
	return m
}

func (p *StatsProvider) fromCache(ctx context.Context) (domain.DashboardMetrics, bool) {
	raw, err := p.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return domain.DashboardMetrics{}, false
	}
	var m domain.DashboardMetrics
	if err := json.Unmarshal(raw, &m); err != nil {
		p.logger.WarnContext(ctx, "discarding malformed cached stats", "error", err)
		return domain.DashboardMetrics{}, false
	}
	return m, true
}

func (p *StatsProvider) toCache(ctx context.Context, m domain.DashboardMetrics) {
	if p.cache == nil {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		p.logger.WarnContext(ctx, "stats cache write failed", "error", err)
	}
}

// Invalidate drops the cached aggregate; called after store resets.
func (p *StatsProvider) Invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		p.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}

// LocalDashboardMetrics computes the aggregate from the seed store: lifecycle
// status counts, medical split (PG qualification present), non-verified
// count, and pending/flagged document totals.
func (s *Service) LocalDashboardMetrics(ctx context.Context) domain.DashboardMetrics {
	users := s.store.Snapshot()
	m := domain.DashboardMetrics{
		TotalUsers:   len(users),
		StatusCounts: domain.ZeroStatusCounts(),
		UpdatedAt:    s.now(),
	}
	for _, u := range users {
		m.StatusCounts[u.Status]++
		if u.Qualifications.PG != nil {
			m.MedicalProfessionals++
		} else {
			m.NonMedicalProfessionals++
		}
		if u.Status != domain.StatusVerified {
			m.NonVerifiedUsers++
		}
		for _, d := range u.Documents {
			switch d.VerifiedStatus {
			case domain.DocUnverified:
				m.DocumentsPending++
			case domain.DocRejected:
				m.DocumentsFlagged++
			}
		}
	}
	return m
}
