package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novusarc/placement/internal/config"
	"novusarc/placement/internal/database"
	"novusarc/placement/internal/handlers"
	"novusarc/placement/internal/jobs"
	"novusarc/placement/internal/locks"
	"novusarc/placement/internal/metrics"
	placementmw "novusarc/placement/internal/middleware"
	"novusarc/placement/internal/repositories"
	mongorepo "novusarc/placement/internal/repositories/mongo"
	redisrepo "novusarc/placement/internal/repositories/redis"
	"novusarc/placement/internal/routers"
	"novusarc/placement/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "placement"

// app holds everything main wires together.
type app struct {
	db     *gorm.DB
	redis  *goredis.Client
	mongo  *mongorepo.Client
	rounds *repositories.RoundRepository

	roundHandler       *handlers.RoundHandler
	interviewHandler   *handlers.InterviewHandler
	companyHandler     *handlers.CompanyHandler
	jobHandler         *handlers.JobHandler
	applicationHandler *handlers.ApplicationHandler
	healthHandler      *handlers.HealthHandler
}

func newSequenceAllocator(ctx context.Context, cfg *config.Config, a *app) (repositories.SequenceAllocator, error) {
	switch cfg.SequenceBackend {
	case config.SequenceRedis:
		return redisrepo.NewSequenceRepo(a.redis), nil
	case config.SequenceMongo:
		client, err := mongorepo.NewClient(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		a.mongo = client
		db, err := client.DB()
		if err != nil {
			return nil, err
		}
		return mongorepo.NewSequenceRepo(db), nil
	default:
		return &repositories.SequenceRepository{DB: a.db}, nil
	}
}

func newLocker(cfg *config.Config, a *app, logger *zap.Logger) locks.Locker {
	if cfg.LockBackend == config.LockRedis {
		return locks.NewRedis(a.redis, "lock:", locks.WithLogger(logger.Named("locks")))
	}
	return locks.NewLocal()
}

func buildApp(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*app, error) {
	a := &app{db: db}

	if cfg.NeedsRedis() {
		client, err := redisrepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
	}

	seq, err := newSequenceAllocator(ctx, cfg, a)
	if err != nil {
		return nil, err
	}

	a.rounds = &repositories.RoundRepository{DB: db}
	interviews := repositories.NewInterviewRepository(db, newLocker(cfg, a, logger))
	companies := &repositories.CompanyRepository{DB: db, Seq: seq}
	jobRepo := &repositories.JobRepository{DB: db, Seq: seq}
	applications := &repositories.ApplicationRepository{DB: db}

	a.roundHandler = handlers.NewRoundHandler(a.rounds, logger)
	a.interviewHandler = handlers.NewInterviewHandler(interviews, logger)
	a.companyHandler = handlers.NewCompanyHandler(companies, logger)
	a.jobHandler = handlers.NewJobHandler(jobRepo, logger)
	a.applicationHandler = handlers.NewApplicationHandler(applications, logger)
	a.healthHandler = handlers.NewHealthHandler(serviceName, a.dependencyChecks())

	logger.Info("repositories initialised",
		zap.String("sequence_backend", cfg.SequenceBackend),
		zap.String("lock_backend", cfg.LockBackend))
	return a, nil
}

func (a *app) dependencyChecks() map[string]handlers.DependencyCheck {
	checks := map[string]handlers.DependencyCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}
	if a.mongo != nil {
		checks["mongo"] = a.mongo.Ping
	}
	return checks
}

func (a *app) close(ctx context.Context) {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.mongo != nil {
		a.mongo.Disconnect(ctx)
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func registerRoutes(router *chi.Mux, a *app) {
	routers.HealthRoutes(router, a.healthHandler)
	routers.CompanyRoutes(router, a.companyHandler)
	routers.JobRoutes(router, a.jobHandler)
	routers.RoundRoutes(router, a.roundHandler)
	routers.ApplicationRoutes(router, a.applicationHandler)
	routers.InterviewRoutes(router, a.interviewHandler)
}

func newRouter(cfg *config.Config, logger *zap.Logger, a *app) *chi.Mux {
	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", placementmw.ActorHeader},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware(serviceName))
	router.Use(placementmw.Actor(cfg.JWTSecret, logger))

	registerRoutes(router, a)
	return router
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	a, err := buildApp(context.Background(), cfg, db, logger)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	auditJob := jobs.NewOrderAuditJob(a.rounds, jobs.AuditConfig{
		Enabled:  cfg.AuditEnabled,
		Schedule: cfg.AuditSchedule,
	}, logger)
	if err := auditJob.Start(); err != nil {
		logger.Error("Failed to start order audit job", zap.Error(err))
	}

	router := newRouter(cfg, logger, a)
	serverAddr := ":" + cfg.Port

	// HTTP server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Placement service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Placement service shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auditJob.Stop()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	a.close(ctx)

	logger.Info("Placement service exited")
}
