package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/tagihwarga-api/docs" // Swagger docs
	"github.com/sjperalta/tagihwarga-api/internal/cache"
	"github.com/sjperalta/tagihwarga-api/internal/config"
	"github.com/sjperalta/tagihwarga-api/internal/database"
	"github.com/sjperalta/tagihwarga-api/internal/handlers"
	"github.com/sjperalta/tagihwarga-api/internal/jobs"
	"github.com/sjperalta/tagihwarga-api/internal/middleware"
	"github.com/sjperalta/tagihwarga-api/internal/repository"
	"github.com/sjperalta/tagihwarga-api/internal/services"
	"github.com/sjperalta/tagihwarga-api/internal/storage"
	"github.com/sjperalta/tagihwarga-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title TagihWarga API
// @version 1.0
// @description REST API for WiFi subscription billing: roster, payments, proofs and WhatsApp reminders

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.EnableEmailNotifications && (cfg.ResendAPIKey == "" || cfg.OperatorEmail == "") {
		logger.Warn("Daily summary email disabled: RESEND_API_KEY or OPERATOR_EMAIL not set")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	ctx := context.Background()

	store, closeStore, err := openBlobStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	snapshots, closeCache := openSnapshotCache(ctx, cfg)
	defer closeCache()

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, store, snapshots, cfg)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// openBlobStore picks the proof store for STORAGE_DRIVER
func openBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, func(), error) {
	if cfg.StorageDriver == "gcs" {
		gcs, err := storage.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSPublicURLs)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized GCS storage", "bucket", cfg.GCSBucket)
		return gcs, func() { closeQuietly("gcs", gcs) }, nil
	}

	local, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)
	return local, func() {}, nil
}

// openSnapshotCache uses Redis when configured and reachable, otherwise an in-process cache
func openSnapshotCache(ctx context.Context, cfg *config.Config) (cache.SnapshotCache, func()) {
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, ttl)
		if err == nil {
			logger.Info("Using Redis snapshot cache", "addr", cfg.RedisAddr)
			return rc, func() { closeQuietly("redis", rc) }
		}
		logger.Warn("Redis unavailable, falling back to memory cache", "addr", cfg.RedisAddr, "error", err)
	}
	return cache.NewMemoryCache(ttl), func() {}
}

func closeQuietly(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("Failed to close "+name, "error", err)
	}
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.ProofMaxBytes + 1<<20

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/proofs"})))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.RegisterRoutes(router.Group("/api/v1"))

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	schedule := svcs.Job.Schedule()

	// Expire proofs past their display window; runs at startup so a restart catches up
	worker.ScheduleEveryImmediate(schedule.ProofSweepEvery, func(ctx context.Context) error {
		logger.Info("[Job] Expiring stale payment proofs...")
		_, err := svcs.Proof.ExpireStaleProofs(ctx)
		return err
	})

	// Operator summary email once a day
	worker.ScheduleDaily(schedule.DailySummaryHour, schedule.Location, func(ctx context.Context) error {
		logger.Info("[Job] Sending daily summary email...")
		return svcs.Summary.SendDaily(ctx)
	})

	logger.Info("Scheduled recurring jobs",
		"proof_sweep_every", schedule.ProofSweepEvery,
		"next_daily_summary", svcs.Job.NextDailySummary(),
	)
}
