package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/config"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/event"
	"github.com/simp-lee/storeadmin/internal/middleware"
	"github.com/simp-lee/storeadmin/internal/seed"
	"github.com/simp-lee/storeadmin/internal/store"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultCORSMaxAge     = 24 * time.Hour
	shutdownTimeout       = 5 * time.Second
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	handler http.Handler
	backend store.Backend
	db      *gorm.DB
	events  event.Publisher
	logger  *logger.Logger
	cfg     *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the store backend, the change event publisher, seed
// data, middleware, and the admin modules.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	if cfg.Server.APIToken == "" {
		log.Warn("no api_token configured, the admin API is unauthenticated")
	}

	backend, db, err := OpenStore(cfg, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := config.CloseDatabase(db); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	pub, err := OpenPublisher(&cfg.Events, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open event publisher: %w", err)
	}
	defer func() {
		if !success {
			closePublisher(pub, log.Logger)
		}
	}()

	if cfg.Store.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
		_, err := seed.Run(ctx, backend, time.Now(), log.Logger)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: cfg.Server.TrustRequestID,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
		middleware.RateLimit(resolveRateLimit(cfg.Server.RateLimit)),
		middleware.Timeout(config.ParseDurationOr(cfg.Server.Timeout, defaultRequestTimeout)),
	)

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules:  BuildModules(backend, pub, log.Logger),
		Checks:   healthChecks(backend, db, pub),
		APIToken: cfg.Server.APIToken,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		handler: otelhttp.NewHandler(engine, "storeadmin"),
		backend: backend,
		db:      db,
		events:  pub,
		logger:  log,
		cfg:     cfg,
	}, nil
}

// Handler returns the instrumented HTTP handler serving the admin API.
func (a *App) Handler() http.Handler {
	return a.handler
}

// OpenStore builds the store backend selected by cfg.Store. The returned DB
// is non-nil only for the local backend and must be closed by the caller.
func OpenStore(cfg *config.Config, log *slog.Logger) (store.Backend, *gorm.DB, error) {
	opts := store.Options{
		Backend: cfg.Store.Backend,
		Prefix:  cfg.Store.Prefix,
		Logger:  log,
		Remote: store.RemoteConfig{
			BaseURL: cfg.Store.Remote.BaseURL,
			Timeout: config.ParseDurationOr(cfg.Store.Remote.Timeout, 0),
			Session: domain.Session{Token: cfg.Store.Remote.Token},
		},
	}

	if cfg.Store.Backend == store.BackendLocal {
		db, err := config.OpenDatabase(&cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		opts.DB = db
	}

	backend, err := store.New(opts)
	if err != nil {
		if cerr := config.CloseDatabase(opts.DB); cerr != nil {
			log.Error("database close error", slog.Any("error", cerr))
		}
		return nil, nil, err
	}

	backendName := cfg.Store.Backend
	if backendName == "" {
		backendName = store.BackendMemory
	}
	log.Info("store opened", slog.String("backend", backendName))
	return backend, opts.DB, nil
}

// OpenPublisher connects to NATS when events are enabled and otherwise
// returns a publisher that drops every event.
func OpenPublisher(cfg *config.EventsConfig, log *slog.Logger) (event.Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return event.Nop{}, nil
	}
	pub, err := event.Connect(cfg.NATSURL, cfg.SubjectPrefix)
	if err != nil {
		return nil, err
	}
	log.Info("event publisher connected",
		slog.String("url", cfg.NATSURL),
		slog.String("subject_prefix", cfg.SubjectPrefix),
	)
	return pub, nil
}

func closePublisher(pub event.Publisher, log *slog.Logger) {
	c, ok := pub.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Error("event publisher close error", slog.Any("error", err))
	}
}

func healthChecks(backend store.Backend, db *gorm.DB, pub event.Publisher) []HealthCheck {
	checks := []HealthCheck{{
		Name: "store",
		Check: func(ctx context.Context) error {
			_, err := backend.LoadDocument(ctx, catalog.SettingsDocument)
			return err
		},
	}}
	if db != nil {
		checks = append(checks, HealthCheck{
			Name: "database",
			Check: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		})
	}
	if c, ok := pub.(interface{ Connected() bool }); ok {
		checks = append(checks, HealthCheck{
			Name: "events",
			Check: func(context.Context) error {
				if !c.Connected() {
					return errors.New("nats disconnected")
				}
				return nil
			},
		})
	}
	return checks
}

func resolveCORSConfig(mode string, cfg config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowCredentials = cfg.AllowCredentials
	maxAge := config.ParseDurationOr(cfg.MaxAge, defaultCORSMaxAge)
	corsConfig.MaxAge = strconv.Itoa(int(maxAge / time.Second))

	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
		return corsConfig
	}

	// Release mode without an allowlist denies cross-origin requests.
	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}
	return corsConfig
}

func resolveRateLimit(cfg config.RateLimitConfig) middleware.RateLimitConfig {
	if !cfg.Enabled {
		return middleware.RateLimitConfig{}
	}
	return middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RPS,
		Burst:             cfg.Burst,
	}
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It shuts down gracefully, then closes the publisher, the database and the
// logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.handler == nil {
		return errors.New("app handler is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.handler, config.ParseDurationOr(a.cfg.Server.Timeout, defaultRequestTimeout))

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.events != nil {
		closePublisher(a.events, log)
	}
	if a.db != nil {
		if err := config.CloseDatabase(a.db); err != nil {
			log.Error("database close error", slog.Any("error", err))
		} else {
			log.Info("database connection closed")
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}
	return runErr
}
