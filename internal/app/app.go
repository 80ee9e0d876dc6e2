// Package app assembles the server from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readiness/internal/assessment"
	"readiness/internal/cache"
	"readiness/internal/config"
	"readiness/internal/metrics"
	"readiness/internal/repository"
	"readiness/internal/service"
	"readiness/internal/transport/rest"
	"readiness/internal/transport/ws"
)

const pingTimeout = 5 * time.Second

// App holds the wired dependencies of one server process
type App struct {
	Router      http.Handler
	Hub         *ws.Hub
	Registry    *prometheus.Registry
	Auth        *service.AuthService
	Assessments *service.AssessmentService
	Improvement *service.ImprovementService
}

// ConnectMongo connects and pings MongoDB
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// ConnectRedis connects and pings Redis
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddress(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return rdb, nil
}

// New builds repositories, caches, services and transports on top of db and rdb
func New(cfg *config.Config, logger *slog.Logger, db *mongo.Database, rdb *redis.Client) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.MustNewMetrics(registry)

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	resultRepo := repository.NewResultRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	eventRepo := repository.NewEventRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionCacheTTL)
	personaCache := cache.NewPersonaCache(rdb)
	improvementCache := cache.NewImprovementCache(rdb, cfg.AssignmentTTL)

	// Initialize services
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.RespondentTTL)
	assessmentSvc := service.NewAssessmentService(
		assessment.NewFactory(),
		sessionRepo,
		resultRepo,
		sessionCache,
		personaCache,
		authSvc,
		m,
		logger,
	)

	var improvementSvc *service.ImprovementService
	if cfg.VariantsEnabled {
		var err error
		improvementSvc, err = service.NewImprovementService(
			variantRepo,
			eventRepo,
			improvementCache,
			cfg.VariantCacheMax,
			cfg.VariantCacheTTL,
			logger,
		)
		if err != nil {
			return nil, err
		}
		assessmentSvc.SetImprovementService(improvementSvc)
	}

	// Inject broadcaster (hub implements service.Broadcaster)
	hub := ws.NewHub(logger, m)
	assessmentSvc.SetBroadcaster(hub)

	router := rest.NewRouter(&rest.Container{
		AuthService:        authSvc,
		AssessmentService:  assessmentSvc,
		ImprovementService: improvementSvc,
		WSHub:              hub,
		Gatherer:           registry,
		AllowedOrigins:     cfg.AllowedOrigins,
		Logger:             logger,
	})

	return &App{
		Router:      router,
		Hub:         hub,
		Registry:    registry,
		Auth:        authSvc,
		Assessments: assessmentSvc,
		Improvement: improvementSvc,
	}, nil
}

// Close stops the WebSocket hub and drops every live connection
func (a *App) Close() {
	a.Hub.Close()
}
