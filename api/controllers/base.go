package controllers

import (
	"context"
	"net/http"
	"time"

	"Pickme/api/bracket"
	"Pickme/api/cache"
	"Pickme/api/config"
	"Pickme/api/describe"
	"Pickme/api/itemsource"
	"Pickme/api/metrics"
	"Pickme/api/middlewares"
	"Pickme/api/models"
	"Pickme/api/seed"
	"Pickme/api/sessions"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const descriptionCacheTTL = 24 * time.Hour

type Server struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Sessions  *sessions.Store
	Describer describe.Describer
	Resolver  itemsource.Resolver
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Logger    *zap.Logger
	Config    config.Config

	janitor *cron.Cron
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(cfg config.Config, logger *zap.Logger) {
	server.Config = cfg
	server.Logger = logger
	ctx := context.Background()

	var dialector gorm.Dialector
	if cfg.DBDriver == "sqlite" {
		dialector = sqlite.Open(cfg.DSN())
	} else {
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Fatal("cannot connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	server.DB = db

	if err := models.AutoMigrate(server.DB); err != nil {
		logger.Fatal("error migrating database", zap.Error(err))
	}

	// Redis init (safe failure)
	if err := cache.InitFromEnv(); err != nil {
		logger.Warn("could not connect to redis", zap.Error(err))
	}

	if cfg.YouTubeAPIKey != "" {
		resolver, err := itemsource.NewYouTubeResolver(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			logger.Warn("title-only items disabled", zap.Error(err))
		} else {
			server.Resolver = resolver
		}
	}

	src, err := seed.SourceFromConfig(ctx, cfg)
	if err != nil {
		logger.Warn("link list source unavailable", zap.Error(err))
	}
	if src != nil {
		src = itemsource.Resolved{Source: src, Resolver: server.Resolver}
	}
	if _, err := seed.Load(ctx, server.DB, src, cfg.SeedCatalogTitle, cfg.SeedCatalogTopic, logger); err != nil {
		logger.Error("error seeding catalog", zap.Error(err))
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := describe.NewGeminiDescriber(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("winner descriptions disabled", zap.Error(err))
		} else {
			server.Describer = describe.Cached{Next: gemini, TTL: descriptionCacheTTL}
		}
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.AppEnv}); err != nil {
			logger.Warn("error reporting disabled", zap.Error(err))
		}
	}

	server.Registry = prometheus.NewRegistry()
	server.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	server.Metrics = metrics.New(server.Registry)
	server.Sessions = newSessionStore(cfg.SessionTTL, server.Metrics, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	server.initializeRouter()

	if err := server.StartJanitor(cfg.JanitorSchedule); err != nil {
		logger.Fatal("invalid janitor schedule", zap.String("schedule", cfg.JanitorSchedule), zap.Error(err))
	}
}

func newSessionStore(ttl time.Duration, m *metrics.Metrics, logger *zap.Logger, engineOpts ...bracket.Option) *sessions.Store {
	engineOpts = append(engineOpts, bracket.WithObserver(func(_, to bracket.State) {
		if to == bracket.RoundComplete {
			m.RoundsCompleted.Inc()
		}
	}))
	return sessions.NewStore(ttl,
		sessions.WithLogger(logger),
		sessions.WithSizeObserver(func(n int) { m.ActiveSessions.Set(float64(n)) }),
		sessions.WithEngineOptions(engineOpts...),
	)
}

func (server *Server) initializeRouter() {
	server.Router = gin.Default()
	server.Router.Use(middlewares.ErrorReportingMiddleware())
	server.Router.Use(middlewares.CORSMiddleware(server.Config.AllowedOrigins))
	server.Router.Use(middlewares.RateLimitMiddleware())
	server.initializeRoutes()
}

// StartJanitor drops idle tournaments and forgotten rate-limit visitors on
// schedule, a robfig/cron expression such as "@every 5m".
func (server *Server) StartJanitor(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, server.sweep)
	if err != nil {
		return err
	}
	server.janitor = c
	c.Start()
	return nil
}

// StopJanitor waits for a running sweep to finish.
func (server *Server) StopJanitor() {
	if server.janitor == nil {
		return
	}
	<-server.janitor.Stop().Done()
	server.janitor = nil
}

func (server *Server) sweep() {
	evicted := server.Sessions.EvictIdle()
	visitors := middlewares.CleanupVisitors(server.Config.SessionTTL)
	server.Logger.Debug("janitor sweep",
		zap.Int("tournaments_evicted", evicted),
		zap.Int("visitors_dropped", visitors),
	)
}

// Run serves until the listener fails, then stops the janitor and flushes
// pending error reports before returning the error.
func (server *Server) Run(addr string) error {
	defer server.StopJanitor()
	defer sentry.Flush(2 * time.Second)
	server.Logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, server.Router); err != nil {
		server.Logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
