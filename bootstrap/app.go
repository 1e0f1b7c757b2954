// Package bootstrap wires drivers, gateways, usecases, the job queue,
// the refresh scheduler, and the HTTP server into a running service.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"photo-indexer/config"
	"photo-indexer/driver"
	"photo-indexer/gateway"
	"photo-indexer/logger"
	"photo-indexer/port"
	"photo-indexer/queue"
	"photo-indexer/scheduler"
	"photo-indexer/schema"
	"photo-indexer/server"
	"photo-indexer/usecase"
	appOtel "photo-indexer/utils/otel"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const indexName = "photos"

// App holds the long-lived components of the photo-indexer service.
type App struct {
	httpServer   *server.Server
	consumer     *queue.Consumer
	pool         *pgxpool.Pool
	redisClient  *redis.Client
	otelShutdown appOtel.ShutdownFunc
}

// Run initializes all components and starts the service. It blocks
// until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("starting photo-indexer",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("failed to load config", "err", err)
		return err
	}

	// ── Analysis schema ──
	// A missing synonyms file is fatal: an index built without the
	// synonym map would answer queries differently from one built with
	// it, and the difference is invisible until someone searches.
	groups, err := schema.LoadSynonyms(appCfg.Analysis.SynonymsPath)
	if err != nil {
		logger.Logger.Error("failed to load synonyms file",
			"path", appCfg.Analysis.SynonymsPath, "err", err)
		return err
	}
	analysis := schema.NewAnalysis(groups)

	// ── Drivers ──
	pool, err := initPostgresPool(ctx, appCfg)
	if err != nil {
		logger.Logger.Error("failed to initialize Postgres", "err", err)
		return err
	}

	msClient, err := initMeilisearchClient(appCfg)
	if err != nil {
		logger.Logger.Error("failed to initialize Meilisearch", "err", err)
		pool.Close()
		return err
	}

	queueCfg := queue.ConfigFromEnv()
	redisClient, err := initRedisClient(ctx, queueCfg.RedisURL)
	if err != nil {
		logger.Logger.Error("failed to initialize Redis", "err", err)
		pool.Close()
		return err
	}

	searchDriver := driver.NewMeilisearchDriver(msClient, indexName, analysis)

	// ── Gateways ──
	translator := gateway.NewSearchResultTranslator()
	photoIndex := gateway.NewPhotoIndexGateway(searchDriver, analysis, translator)
	profiles := gateway.NewProfileRepositoryGateway(driver.NewProfilesDriver(pool))

	if err := photoIndex.EnsureIndex(ctx); err != nil {
		logger.Logger.Error("failed to ensure search index", "err", err)
		pool.Close()
		return err
	}

	// ── Source adapters ──
	adapters := buildSourceAdapters(appCfg)
	if len(adapters) == 0 {
		logger.Logger.Warn("no source credentials configured, imports will fail")
	}

	// ── Use cases ──
	producer := queue.NewProducer(redisClient, queueCfg)
	importUsecase := usecase.NewImportPhotosUsecase(adapters, profiles, photoIndex)
	searchUsecase := usecase.NewSearchPhotosUsecase(photoIndex)
	registerUsecase := usecase.NewRegisterProfileUsecase(profiles, producer)
	listUsecase := usecase.NewListProfilesUsecase(profiles)
	refreshUsecase := usecase.NewRefreshProfilesUsecase(profiles, producer)

	// ── Queue consumer ──
	var consumer *queue.Consumer
	if queueCfg.Enabled {
		handler := queue.NewImportEventHandler(importUsecase, redisClient, queueCfg, logger.Logger)
		consumer = queue.NewConsumer(redisClient, queueCfg, handler, logger.Logger)
		if err := consumer.Start(ctx); err != nil {
			logger.Logger.Error("failed to start queue consumer", "err", err)
		} else {
			logger.Logger.Info("queue consumer started",
				"stream", queueCfg.StreamKey, "group", queueCfg.GroupName)
		}
	} else {
		logger.Logger.Info("queue consumer disabled")
	}

	// ── Refresh scheduler ──
	if appCfg.Scheduler.Enabled {
		go scheduler.New(refreshUsecase, appCfg.Scheduler.Interval).Start(ctx)
		logger.Logger.Info("refresh scheduler started", "interval", appCfg.Scheduler.Interval)
	} else {
		logger.Logger.Info("refresh scheduler disabled")
	}

	// ── HTTP server ──
	app := &App{
		httpServer: server.New(appCfg, server.Handlers{
			Search:  newSearchHandler(searchUsecase),
			Profile: newProfileHandler(registerUsecase, listUsecase),
			Import:  newImportHandler(producer),
			Health:  newHealthHandler(),
		}),
		consumer:     consumer,
		pool:         pool,
		redisClient:  redisClient,
		otelShutdown: otelShutdown,
	}

	go func() {
		if err := app.httpServer.Start(); err != nil {
			logger.Logger.Error("http server failed", "err", err)
		}
	}()

	<-ctx.Done()
	app.shutdown()
	return nil
}

// buildSourceAdapters wires an adapter per source that has credentials.
// A source with an empty credential is simply not available.
func buildSourceAdapters(cfg *config.Config) []port.SourceAdapter {
	var adapters []port.SourceAdapter
	if cfg.Sources.InstagramAccessToken != "" {
		apiDriver := driver.NewInstagramAPIDriver(nil, "", cfg.Sources.InstagramAccessToken)
		adapters = append(adapters, gateway.NewInstagramAdapter(apiDriver))
	}
	if cfg.Sources.FlickrAPIKey != "" {
		apiDriver := driver.NewFlickrAPIDriver(nil, "", cfg.Sources.FlickrAPIKey)
		adapters = append(adapters, gateway.NewFlickrAdapter(apiDriver))
	}
	return adapters
}

// shutdown stops components in reverse dependency order.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.consumer != nil {
		a.consumer.Stop()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.Logger.Error("redis close error", "err", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}
