package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ayushdesk/internal/audit/stream"
	"ayushdesk/internal/auth"
	"ayushdesk/internal/content"
	"ayushdesk/internal/directory"
	"ayushdesk/internal/platform/config"
	"ayushdesk/internal/platform/httpserver"
	"ayushdesk/internal/platform/logger"
	"ayushdesk/internal/platform/metrics"
	platformredis "ayushdesk/internal/platform/redis"
	"ayushdesk/internal/remote"
	httptransport "ayushdesk/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	store := directory.NewStore(time.Now())

	cache, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable, stats cache disabled", "error", err.Error())
		cache = nil
	}

	var publisher *stream.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = stream.New(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("audit stream unavailable, continuing without it", "error", err.Error())
			publisher = nil
		}
	}

	dirOpts := []directory.Option{
		directory.WithMetrics(m),
		directory.WithAuditStream(publisher),
	}
	if !cfg.SimulatedLatency {
		dirOpts = append(dirOpts, directory.WithLatency(directory.Latency{}))
	}
	dirService := directory.NewService(store, log, dirOpts...)
	statsProvider := directory.NewStatsProvider(dirService, cache, log)

	upstream := remote.NewClient(cfg.UpstreamBaseURL, &http.Client{Timeout: 15 * time.Second})
	adapter := remote.NewAdapter(upstream, dirService, statsProvider, log, m)

	tokens := auth.NewTokenService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.SessionTTL)
	authService := auth.NewService(upstream, tokens, auth.LocalOperator{
		Email:       cfg.AdminEmail,
		Password:    cfg.AdminPassword,
		DisplayName: cfg.AdminName,
	}, log)

	var contentStore content.Store = content.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, dbErr := content.Open(cfg.DatabaseURL)
		if dbErr != nil {
			log.Error("postgres unavailable, content falls back to memory", "error", dbErr.Error())
		} else {
			defer db.Close()
			pgStore := content.NewPostgresStore(db)
			if schemaErr := pgStore.EnsureSchema(ctx); schemaErr != nil {
				log.Error("content schema setup failed, falling back to memory", "error", schemaErr.Error())
			} else {
				contentStore = pgStore
			}
		}
	}
	contentService := content.NewService(contentStore, log, content.WithMetrics(m))

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:      httptransport.NewAuthHandler(authService, log),
		Users:     httptransport.NewUserHandler(adapter, dirService, log),
		Documents: httptransport.NewDocumentHandler(dirService, log),
		Content:   httptransport.NewContentHandler(contentService, log),
		System:    httptransport.NewSystemHandler(dirService, statsProvider, log),
		Validator: authService,
		Metrics:   m,
		Logger:    log,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting ayushdesk", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	waitErr := g.Wait()

	// Flush and close regardless of how the server came down; a failed
	// listener still leaves buffered audit records worth delivering.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	publisher.Close(flushCtx)
	flushCancel()
	if closeErr := cache.Close(); closeErr != nil {
		log.Error("closing redis", "error", closeErr.Error())
	}

	if waitErr != nil {
		log.Error("server exited", "error", waitErr.Error())
		os.Exit(1)
	}
	log.Info("ayushdesk stopped")
}
