package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/easydev/config"
	"github.com/ErlanBelekov/easydev/internal/auth"
	"github.com/ErlanBelekov/easydev/internal/converter"
	"github.com/ErlanBelekov/easydev/internal/email"
	"github.com/ErlanBelekov/easydev/internal/health"
	"github.com/ErlanBelekov/easydev/internal/infrastructure/memory"
	"github.com/ErlanBelekov/easydev/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/easydev/internal/log"
	"github.com/ErlanBelekov/easydev/internal/metrics"
	"github.com/ErlanBelekov/easydev/internal/ratelimit"
	"github.com/ErlanBelekov/easydev/internal/repository"
	"github.com/ErlanBelekov/easydev/internal/stats"
	"github.com/ErlanBelekov/easydev/internal/textservice"
	httptransport "github.com/ErlanBelekov/easydev/internal/transport/http"
	"github.com/ErlanBelekov/easydev/internal/transport/http/handler"
	"github.com/ErlanBelekov/easydev/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the metrics server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return runServer(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// stores groups the repositories behind one backend.
type stores struct {
	users    repository.UserRepository
	notes    repository.NoteRepository
	snippets repository.SnippetRepository
	stats    repository.StatsRepository
	deps     []health.Dependency
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (*stores, error) {
	if cfg.UseMemoryStore() {
		logger.Warn("using in-memory store; data is lost on restart")
		s := memory.NewStore()
		return &stores{
			users:    s.Users(),
			notes:    s.Notes(),
			snippets: s.Snippets(),
			stats:    s.Stats(),
			close:    func() {},
		}, nil
	}

	if migrate {
		if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return &stores{
		users:    postgres.NewUserRepository(pool, cfg.DBTimeout),
		notes:    postgres.NewNoteRepository(pool, cfg.DBTimeout),
		snippets: postgres.NewSnippetRepository(pool, cfg.DBTimeout),
		stats:    postgres.NewStatsRepository(pool, cfg.DBTimeout),
		deps:     []health.Dependency{{Name: "postgres", Pinger: pool}},
		close:    pool.Close,
	}, nil
}

func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, *health.Dependency, func(), error) {
	if cfg.RedisURL == "" {
		return ratelimit.NewMemory(cfg.AIRateLimit), nil, func() {}, nil
	}
	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("redis: %w", err)
	}
	logger.Info("rate limiting through redis")
	dep := &health.Dependency{
		Name:   "redis",
		Pinger: health.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }),
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("redis close", "error", err)
		}
	}
	return ratelimit.NewRedis(client, cfg.AIRateLimit), dep, closeFn, nil
}

func runServer(parent context.Context, cfg *config.Config, migrate bool) error {
	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, migrate, logger)
	if err != nil {
		return err
	}
	defer st.close()

	limiter, redisDep, closeRedis, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRedis()
	deps := st.deps
	if redisDep != nil {
		deps = append(deps, *redisDep)
	}

	codec, err := auth.NewCodec(auth.CodecConfig{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL})
	if err != nil {
		return fmt.Errorf("credential codec: %w", err)
	}

	// Accounts
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(st.users, sender, codec, logger)

	// Text completion; without a key the endpoint answers 503.
	var completer usecase.Completer
	if cfg.AIEnabled() {
		completer = textservice.NewClient(textservice.Config{
			URL:     cfg.PerplexityURL,
			APIKey:  cfg.PerplexityAPIKey,
			Model:   cfg.PerplexityModel,
			Timeout: cfg.AITimeout,
		})
	} else {
		logger.Warn("PERPLEXITY_API_KEY not set; AI endpoint disabled")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:         logger,
		Verifier:       codec,
		AILimiter:      limiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		HSTS:           cfg.Env != "local",
		Auth:           handler.NewAuthHandler(authUsecase, logger),
		Notes:          handler.NewNoteHandler(usecase.NewNoteUsecase(st.notes), logger),
		Snippets:       handler.NewSnippetHandler(usecase.NewSnippetUsecase(st.snippets), logger),
		AI:             handler.NewAIHandler(usecase.NewAIUsecase(completer, logger), logger),
		Converter:      handler.NewConverterHandler(converter.New(), cfg.MaxUploadBytes, logger),
	})

	metrics.Register()
	metrics.StartTime.SetToCurrentTime()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, deps...)

	collector, err := stats.NewCollector(st.stats, metrics.InventoryItems, metrics.StatsCollectDuration, cfg.StatsSchedule, logger)
	if err != nil {
		return err
	}
	collector.Start(ctx)
	defer collector.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		logger.Error("server", "error", runErr)
	}
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	return runErr
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
