package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	docs "stockplus/docs"
	"stockplus/internal/application/service/chart"
	"stockplus/internal/application/service/coordinator"
	"stockplus/internal/application/service/holdings"
	"stockplus/internal/application/service/insight"
	"stockplus/internal/application/service/pricebuffer"
	"stockplus/internal/application/service/watchlist"
	"stockplus/internal/config"
	market "stockplus/internal/domain/entity/market"
	"stockplus/internal/infrastructure/archive"
	"stockplus/internal/infrastructure/backend"
	"stockplus/internal/infrastructure/broker"
	"stockplus/internal/infrastructure/cache"
	"stockplus/internal/infrastructure/feed"
	"stockplus/internal/infrastructure/render"
	infrahttp "stockplus/internal/interfaces/http"
	"stockplus/internal/interfaces/ws"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.LogLevel)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, backend.NewSession(cfg.Backend.Token, cfg.Backend.Username), logger)
	if !client.Session().Valid() && cfg.Backend.Username != "" {
		if err := client.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); err != nil {
			logger.Fatalf("failed to log in to backend: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	chartCache, err := cache.NewChartCache(cfg.Cache.ChartMaxCost, cfg.Cache.TTL(), redisClient, logger)
	if err != nil {
		logger.Fatalf("failed to init chart cache: %v", err)
	}
	defer chartCache.Close()
	quotes := cache.NewCachedQuotes(client, chartCache)

	store := watchlist.NewStore(client, quotes, watchlist.Options{
		FetchLimit:        cfg.Feed.PriceFetchLimit,
		RollbackOnFailure: cfg.Feed.RollbackOnFailure,
	}, logger)

	var frames *render.FramePublisher
	hub := ws.NewHub(func() []any { return frames.Current() }, logger)
	frames = render.NewFramePublisher(hub)

	view := chart.NewView(frames, logger)
	coord := coordinator.New(store, quotes, view, cfg.UI.DefaultGroup,
		market.Venue(cfg.UI.DefaultVenue), market.Period(cfg.UI.DefaultPeriod), logger)

	buffer := pricebuffer.New(cfg.Feed.FlushInterval, logger)
	buffer.Subscribe(func(s pricebuffer.Snapshot) { coord.OnFlush(s) })

	var (
		writer  *archive.Writer
		history infrahttp.TickHistory
	)
	if cfg.Postgres.DSN != "" {
		repo, err := archive.NewRepository(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Fatalf("failed to init tick archive: %v", err)
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatalf("failed to prepare tick archive schema: %v", err)
		}
		writer = archive.NewWriter(archive.BatchConfig{
			Size:    cfg.Postgres.BatchSize,
			Timeout: cfg.Postgres.BatchTimeout,
		}, repo, logger)
		buffer.Subscribe(writer.Consume)
		history = repo
	}

	prices := feed.NewHub(client, buffer.AbsorbPayload, cfg.Feed.ReconnectBackoff, logger)

	if cfg.RabbitMQ.URL != "" {
		consumer, err := broker.NewConsumer(cfg.RabbitMQ, buffer, logger)
		if err != nil {
			logger.Fatalf("failed to init tick consumer: %v", err)
		}
		if err := consumer.Start(ctx); err != nil {
			logger.Fatalf("failed to start tick consumer: %v", err)
		}
		defer consumer.Close()
	}

	insightService := insight.NewService(client, quotes, insight.Options{
		MaxKeywords:     cfg.UI.MaxKeywords,
		RefreshInterval: cfg.UI.InsightRefresh,
	}, logger)
	holdingsService := holdings.NewService(client, quotes, logger)

	handler := infrahttp.NewHandler(infrahttp.Deps{
		Coordinator: coord,
		Insight:     insightService,
		Holdings:    holdingsService,
		Analysis:    client,
		Hub:         hub,
		Feed:        prices,
		Archive:     history,
		Cache:       redisClient,
		CacheTTL:    cfg.Cache.TTL(),
		Logger:      logger,
	})
	store.OnChange(handler.PublishWatchlist)

	if cfg.UI.WatchlistSeedFile != "" {
		seedWatchlist(ctx, store, cfg.UI.WatchlistSeedFile, logger)
	}

	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		buffer.Run(gctx)
		return nil
	})
	g.Go(func() error {
		insightService.Run(gctx)
		return nil
	})
	if writer != nil {
		g.Go(func() error { return writer.Run(gctx) })
	}
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infof("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("server stopped with error: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"feed_connects": prices.Connects(),
		"feed_events":   prices.Events(),
	}).Info("server stopped")
}

func seedWatchlist(ctx context.Context, store *watchlist.Store, path string, logger *logrus.Logger) {
	seed, err := config.LoadWatchlistSeed(path)
	if err != nil {
		logger.Fatalf("failed to load watchlist seed: %v", err)
	}
	for _, group := range seed.Groups {
		entries := make([]market.WatchlistEntry, 0, len(group.Stocks))
		for _, s := range group.Stocks {
			entries = append(entries, market.WatchlistEntry{
				StockCode:    s.Code,
				StockName:    s.Name,
				ExchangeCode: s.Venue,
				IsFavorite:   s.Favorite,
			})
		}
		items, err := store.Ensure(ctx, group.ID, market.VenuePrimary, entries)
		log := logger.WithField("group", group.ID)
		if err != nil {
			log.WithError(err).Warn("watchlist seed incomplete")
		}
		log.WithField("count", len(items)).Info("watchlist seeded")
	}
}
