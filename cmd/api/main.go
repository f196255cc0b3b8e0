package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"solidarity-api/internal/cache"
	pgRepo "solidarity-api/internal/infra/adapter/persistence/postgres"
	"solidarity-api/internal/infra/db"
	"solidarity-api/internal/observability/logging"
	"solidarity-api/internal/observability/tracing"
	"solidarity-api/internal/resilience/circuitbreaker"
	"solidarity-api/pkg/config"
	"solidarity-api/pkg/ratelimit"

	contactUC "solidarity-api/internal/usecase/contact"
	newsletterUC "solidarity-api/internal/usecase/newsletter"
	petitionUC "solidarity-api/internal/usecase/petition"
	videoUC "solidarity-api/internal/usecase/video"

	"solidarity-api/internal/form"
	hhttp "solidarity-api/internal/handler/http"
	hauth "solidarity-api/internal/handler/http/auth"
	hcontact "solidarity-api/internal/handler/http/contact"
	"solidarity-api/internal/handler/http/middleware"
	hnewsletter "solidarity-api/internal/handler/http/newsletter"
	hpetition "solidarity-api/internal/handler/http/petition"
	"solidarity-api/internal/handler/http/requestid"
	hvideo "solidarity-api/internal/handler/http/video"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	authCfg, err := hauth.LoadConfig()
	if err != nil {
		logger.Error("auth configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, database, authCfg, version)

	runServer(logger, components, version)
}

// initDatabase opens the connection pool and applies pending migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds what runServer needs beyond the root handler.
type ServerComponents struct {
	Handler       http.Handler
	Sweeper       *hhttp.Sweeper
	SweepInterval time.Duration
}

// limiterSet is the per-scope rate limiting state built from configuration.
type limiterSet struct {
	// middlewares maps scope name to the gate applied to that route
	// group. All nil when rate limiting is disabled.
	middlewares map[string]form.Middleware

	// stores maps scope name to the backing store, for sweeping and
	// health reporting.
	stores map[string]ratelimit.Store
}

// setupServer wires repositories, services, routes, and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, authCfg *hauth.Config, version string) *ServerComponents {
	// Repository traffic goes through the database circuit breaker;
	// health checks ping the raw pool directly.
	dcb := circuitbreaker.NewDBCircuitBreaker(database)

	contactSvc := contactUC.NewService(pgRepo.NewContactRepo(dcb))
	petitionSvc := petitionUC.NewService(pgRepo.NewPetitionRepo(dcb))
	newsletterSvc := newsletterUC.NewService(pgRepo.NewNewsletterRepo(dcb))
	videoSvc := videoUC.NewService(pgRepo.NewVideoRepo(dcb))

	gate := db.NewHandleGate(config.GetEnvInt("DB_MAX_CLIENT_HANDLES", 100))

	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		logger.Error("failed to load rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}

	rlMetrics := ratelimit.NewPrometheusMetrics()
	limiters := buildLimiters(logger, rlCfg, rlMetrics)

	apiMux := http.NewServeMux()
	hcontact.Register(apiMux, contactSvc, limiters.middlewares["contact"])
	hpetition.Register(apiMux, petitionSvc, limiters.middlewares["petition"])
	hnewsletter.Register(apiMux, newsletterSvc, limiters.middlewares["newsletter"])
	hvideo.Register(apiMux, videoSvc, authCfg)

	// The default limiter and the handle gate cover the whole API
	// subtree; the form routes add their stricter per-scope limits on
	// top.
	var api http.Handler = hhttp.GateHandles(gate)(apiMux)
	if mw := limiters.middlewares["default"]; mw != nil {
		api = mw(api)
	}

	tokenHandler := http.Handler(hauth.TokenHandler(authCfg))
	if mw := limiters.middlewares["auth"]; mw != nil {
		tokenHandler = mw(tokenHandler)
	}

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", api)
	rootMux.Handle("POST /auth/token", tokenHandler)
	rootMux.Handle("GET /health", &hhttp.HealthHandler{
		DB:            database,
		Gate:          gate,
		Version:       version,
		LimiterStores: limiters.stores,
	})
	rootMux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	rootMux.Handle("GET /live", &hhttp.LiveHandler{})
	rootMux.Handle("GET /metrics", hhttp.MetricsHandler(rlMetrics.Registry()))

	handler := applyMiddleware(logger, rootMux)

	targets := make([]hhttp.SweepTarget, 0, len(limiters.stores))
	for scope, store := range limiters.stores {
		targets = append(targets, hhttp.SweepTarget{Scope: scope, Store: store})
	}
	sweeper := hhttp.NewSweeper(logger, rlMetrics, targets,
		[]*cache.CountCache{petitionSvc.Counts, newsletterSvc.Counts})

	return &ServerComponents{
		Handler:       handler,
		Sweeper:       sweeper,
		SweepInterval: rlCfg.SweepInterval,
	}
}

// buildLimiters creates one limiter per route scope, each with its own
// store so sweep results and health key counts stay attributable.
func buildLimiters(logger *slog.Logger, rlCfg *ratelimit.RouteConfig, metrics ratelimit.Metrics) limiterSet {
	set := limiterSet{
		middlewares: make(map[string]form.Middleware),
		stores:      make(map[string]ratelimit.Store),
	}

	if !rlCfg.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		return set
	}

	extractor := buildIPExtractor(logger)

	scopes := []struct {
		name string
		cfg  ratelimit.Config
	}{
		{"contact", rlCfg.Contact},
		{"petition", rlCfg.Petition},
		{"newsletter", rlCfg.Newsletter},
		{"auth", rlCfg.Auth},
		{"default", rlCfg.Default},
	}

	backend := config.GetEnvString("RATELIMIT_BACKEND", "memory")
	var redisClient redis.UniversalClient
	if backend == "redis" {
		opt, err := redis.ParseURL(config.GetEnvString("REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			logger.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		redisClient = redis.NewClient(opt)
	}

	for _, scope := range scopes {
		var store ratelimit.Store
		if redisClient != nil {
			store = ratelimit.NewRedisStore(ratelimit.RedisStoreConfig{
				Client: redisClient,
				Prefix: "ratelimit:" + scope.name + ":",
			})
		} else {
			store = ratelimit.NewMemoryStore(ratelimit.MemoryStoreConfig{
				MaxKeys: rlCfg.MaxActiveKeys,
			})
		}

		limiter := ratelimit.NewLimiter(ratelimit.LimiterConfig{
			Scope:   scope.name,
			Limit:   scope.cfg.Limit,
			Window:  scope.cfg.Window,
			Store:   store,
			Metrics: metrics,
		})

		set.stores[scope.name] = store
		set.middlewares[scope.name] = middleware.NewRateLimit(limiter, extractor).Middleware

		logger.Info("rate limiter configured",
			slog.String("scope", scope.name),
			slog.String("backend", backend),
			slog.Int("limit", scope.cfg.Limit),
			slog.Duration("window", scope.cfg.Window))
	}

	return set
}

// buildIPExtractor selects the client IP strategy from the trusted
// proxy configuration. Proxy headers are only honored when the peer is
// an explicitly trusted proxy.
func buildIPExtractor(logger *slog.Logger) middleware.IPExtractor {
	proxyCfg, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if proxyCfg.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyCfg.AllowedCIDRs)))
		return middleware.NewHeaderChainExtractor(*proxyCfg)
	}

	logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	return &middleware.RemoteAddrExtractor{}
}

// applyMiddleware wraps the root handler with the server-wide chain.
// Order, outermost first: CORS, request ID, tracing, recovery, logging,
// timeout, body limit, header validation, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsCfg := middleware.LoadCORSConfig()
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods))

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Timeout(hhttp.DefaultRequestTimeout)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsCfg)(chain)

	return chain
}

// runServer starts the HTTP server and the sweeper under errgroup
// supervision and shuts both down on SIGINT/SIGTERM.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	if err := components.Sweeper.Start(components.SweepInterval); err != nil {
		logger.Error("failed to start sweeper", slog.Any("error", err))
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server...")

		components.Sweeper.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
