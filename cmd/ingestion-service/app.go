package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lib/pq" // PostgreSQL driver

	"casemail/internal/broker"
	"casemail/internal/communication"
	"casemail/internal/config"
	"casemail/internal/constants"
	"casemail/internal/emailconf"
	"casemail/internal/errand"
	"casemail/internal/ingestion"
	"casemail/internal/logger"
	"casemail/internal/mailbox"
	"casemail/internal/messaging"
	"casemail/pkg/bootstrap"
	"casemail/pkg/circuitbreaker"
	"casemail/pkg/health"
	"casemail/pkg/leaselock"
	"casemail/pkg/metrics"
	"casemail/pkg/middleware"
	"casemail/pkg/ratelimit"
	"casemail/pkg/tracing"
)

type App struct {
	config         *config.Config
	logger         logger.Logger
	dbConnector    *bootstrap.DatabaseConnector
	db             *sql.DB
	redisClient    *redis.Client
	mongoClient    *mongo.Client
	minioClient    *minio.Client
	producer       broker.Producer
	scheduler      *ingestion.Scheduler
	probe          *ingestion.Probe
	server         *http.Server
	router         *gin.Engine
	tracerProvider *tracing.TracerProvider
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	return &App{
		config:      cfg,
		logger:      log,
		dbConnector: bootstrap.NewDatabaseConnector(cfg, log),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.initDatabases(ctx); err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}

	if err := a.initPipeline(ctx); err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	if err := a.initRouter(); err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	a.initServer()

	tp, err := tracing.Init(a.config.Tracing, "ingestion-service")
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.tracerProvider = tp

	return nil
}

func (a *App) initDatabases(ctx context.Context) error {
	db, err := a.dbConnector.InitPostgreSQL(ctx)
	if err != nil {
		return err
	}
	a.db = db

	if a.config.Database.RunMigrations {
		if err := bootstrap.RunMigrations(a.db); err != nil {
			return err
		}
		a.logger.InfowCtx(ctx, "Database migrations applied")
	}

	rdb, err := a.dbConnector.InitRedis(ctx)
	if err != nil {
		return err
	}
	a.redisClient = rdb

	mongoClient, err := a.dbConnector.InitMongoDB(ctx)
	if err != nil {
		a.logger.WarnwCtx(ctx, "MongoDB connection failed, run reports will not be archived", "error", err)
	} else {
		a.mongoClient = mongoClient
	}

	minioClient, err := a.dbConnector.InitMinIO(ctx)
	if err != nil {
		return err
	}
	a.minioClient = minioClient

	return nil
}

func (a *App) initPipeline(ctx context.Context) error {
	configRepo := emailconf.NewRepository(a.db)
	configService := emailconf.NewService(configRepo)

	var mailClient mailbox.Client = mailbox.NewHTTPClient(
		a.config.Mailbox.BaseURL,
		a.config.Mailbox.TimeoutSeconds*time.Second,
	)
	if a.config.CircuitBreaker.Enabled {
		cbCfg := a.config.CircuitBreaker
		mailClient = mailbox.NewCircuitBreakerClient(mailClient, circuitbreaker.Config{
			Name:        "mailbox",
			MaxRequests: cbCfg.MaxRequests,
			Interval:    cbCfg.Interval,
			Timeout:     cbCfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= cbCfg.MinRequests && failureRatio >= cbCfg.FailureRatio
			},
		})
	}

	msgClient := messaging.NewHTTPClient(
		a.config.Messaging.BaseURL,
		a.config.Messaging.TimeoutSeconds*time.Second,
	)

	errandRepo := errand.NewRepository(a.db)
	commRepo := communication.NewRepository(a.db)
	blobStore := communication.NewS3BlobStore(a.minioClient, a.config.Storage.Bucket)

	a.producer = broker.NewProducer(a.config.Broker, a.logger)

	matcher := ingestion.NewMatcher(errandRepo, a.logger)
	persister := ingestion.NewPersister(commRepo, blobStore, mailClient)
	a.probe = ingestion.NewProbe()

	service := ingestion.NewService(
		configService,
		mailClient,
		msgClient,
		matcher,
		errandRepo,
		persister,
		a.producer,
		a.config.Broker.EventTopic,
		a.probe,
		a.logger,
	)

	var reports *ingestion.ReportStore
	if a.mongoClient != nil {
		dbName := a.config.Database.MongoDB.Database
		if dbName == "" {
			dbName = constants.DefaultMongoDBName
		}
		reports = ingestion.NewReportStore(a.mongoClient.Database(dbName), a.config.Ingestion.ReportRetention)
	}

	locker := leaselock.New(a.redisClient)
	a.scheduler = ingestion.NewScheduler(locker, service, a.probe, reports, a.config.Ingestion, a.logger)

	return nil
}

func (a *App) initRouter() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if a.config.Tracing.Enabled {
		router.Use(tracing.GinMiddleware("ingestion-service"))
	}

	router.Use(middleware.RecoveryMiddleware(a.logger))
	router.Use(middleware.LoggerMiddleware(a.logger))
	router.Use(middleware.RequestIDMiddleware())

	api := router.Group("/api/v1")
	if a.config.Admin.RateLimit.Enabled {
		rateLimitConfig := ratelimit.RateLimitConfig{
			RPS:             a.config.Admin.RateLimit.RPS,
			Burst:           a.config.Admin.RateLimit.Burst,
			CleanupInterval: time.Duration(a.config.Admin.RateLimit.CleanupInterval) * time.Second,
			MaxAge:          time.Duration(a.config.Admin.RateLimit.MaxAge) * time.Second,
		}
		api.Use(ratelimit.RateLimitMiddleware(rateLimitConfig))
		a.logger.Infow("Rate limiting enabled", "rps", rateLimitConfig.RPS, "burst", rateLimitConfig.Burst)
	}

	configRepo := emailconf.NewRepository(a.db)
	configHandler := emailconf.NewHandler(emailconf.NewService(configRepo), a.logger)
	configHandler.RegisterRoutes(api)

	commRepo := communication.NewRepository(a.db)
	blobStore := communication.NewS3BlobStore(a.minioClient, a.config.Storage.Bucket)
	commHandler := communication.NewHandler(commRepo, blobStore, a.logger)
	commHandler.RegisterRoutes(api)

	var reports *ingestion.ReportStore
	if a.mongoClient != nil {
		dbName := a.config.Database.MongoDB.Database
		if dbName == "" {
			dbName = constants.DefaultMongoDBName
		}
		reports = ingestion.NewReportStore(a.mongoClient.Database(dbName), a.config.Ingestion.ReportRetention)
	}
	ingestionHandler := ingestion.NewHandler(a.probe, reports)
	ingestionHandler.RegisterRoutes(router)

	metrics.RegisterIngestionMetrics()
	metrics.RegisterCircuitBreakerMetrics()
	metrics.RegisterHTTPMetrics()
	if a.config.Broker.Enabled {
		metrics.RegisterBrokerMetrics()
	}

	healthRegistry := health.NewCheckerRegistry()
	healthRegistry.Register(health.NewPostgreSQLChecker(a.db))
	healthRegistry.Register(health.NewRedisChecker(a.redisClient))
	healthRegistry.Register(health.NewS3Checker(a.minioClient, a.config.Storage.Bucket))
	if a.mongoClient != nil {
		healthRegistry.Register(health.NewMongoDBChecker(a.mongoClient))
	}

	router.GET("/health/ready", func(c *gin.Context) {
		h := healthRegistry.Check(c.Request.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, h)
	})
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a.router = router
	return nil
}

func (a *App) initServer() {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeoutSeconds * time.Second,
		WriteTimeout: a.config.Server.WriteTimeoutSeconds * time.Second,
	}
}

func (a *App) Run(ctx context.Context) error {
	if err := a.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.InfowCtx(ctx, "Server listening", "port", a.config.Server.Port)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return a.Shutdown(ctx)
	case err := <-errChan:
		a.scheduler.Stop()
		return err
	}
}

// RunOnce executes one ingestion pass outside the cron loop.
func (a *App) RunOnce(ctx context.Context) *ingestion.RunReport {
	return a.scheduler.RunOnce(ctx)
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.InfowCtx(ctx, "Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	var errs []error

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("producer close error: %w", err))
		}
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown error: %w", err))
		}
	}

	dbErrs := a.dbConnector.ShutdownDatabases(ctx, a.redisClient, a.db, a.mongoClient)
	errs = append(errs, dbErrs...)

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	a.logger.InfowCtx(ctx, "Server exited successfully")
	return nil
}
