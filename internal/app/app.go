package app

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chargepulse/internal/config"
	httpserver "chargepulse/internal/http"
	"chargepulse/internal/http/handlers"
	"chargepulse/internal/http/middleware"
	redisstore "chargepulse/internal/redis"
	"chargepulse/internal/repository"
	"chargepulse/internal/service"
	"chargepulse/libs/db"
	libredis "chargepulse/libs/redis"
)

// App wires analytics-api dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	var cache *redisstore.Cache
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		redisClient, err = libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		cache = redisstore.NewCache(redisClient, cfg.CacheTTL())
	} else {
		logger.Info("redis not configured, aggregate caching disabled")
	}

	loc, err := cfg.Location()
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	sessionRepo := repository.NewSessionRepository(sqlDB)
	profileRepo := repository.NewProfileRepository(sqlDB)
	analytics := service.NewAnalyticsService(sessionRepo, profileRepo, cache, loc, logger)

	routes := httpserver.Routes{
		Distribution:   handlers.NewDistributionHandler(analytics),
		BoxPlot:        handlers.NewBoxPlotHandler(analytics),
		CDF:            handlers.NewCDFHandler(analytics),
		TimePatterns:   handlers.NewTimePatternsHandler(analytics),
		Comparison:     handlers.NewComparisonHandler(analytics),
		Gaps:           handlers.NewGapsHandler(analytics),
		Carbon:         handlers.NewCarbonHandler(analytics),
		UserProfile:    handlers.NewUserProfileHandler(analytics),
		AnomalousUsers: handlers.NewAnomalousUsersHandler(analytics),
		Health:         handlers.NewHealthHandler(),
	}

	var authMiddleware func(http.Handler) http.Handler
	if strings.TrimSpace(cfg.Auth.JWTSecret) != "" {
		authMiddleware = middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	}

	router := httpserver.NewRouter(routes, authMiddleware)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
