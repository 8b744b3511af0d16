package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hushh-site-backend/config"
	_ "hushh-site-backend/docs" // Important for Swagger
	v1 "hushh-site-backend/internal/delivery/http/v1"
	"hushh-site-backend/internal/domain"
	"hushh-site-backend/internal/repository/memory"
	"hushh-site-backend/internal/repository/postgres"
	"hushh-site-backend/internal/usecase"
	"hushh-site-backend/pkg/audit"
	"hushh-site-backend/pkg/auth"
	"hushh-site-backend/pkg/database"
	"hushh-site-backend/pkg/dispatch"
	"hushh-site-backend/pkg/logger"
	"hushh-site-backend/pkg/redis"
	"hushh-site-backend/pkg/storage"

	"github.com/robfig/cron/v3"
)

// @title           Hushh Site Backend API
// @version         1.0
// @description     Contact draft and submission backend for the marketing site.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting hushh site backend", "port", cfg.Port)
	audit.Init("hushh-site-backend", audit.Environment())
	defer audit.Sync()

	// 3. Setup Database (optional - the archive is a supplement, the
	// service runs fine without it)
	var submissionRepo domain.SubmissionRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		submissionRepo = postgres.NewSubmissionRepository(dbPool)
	} else {
		logger.Log.Warn("DATABASE_URL not set - submissions will not be archived")
	}

	// 4. Setup Redis (optional - rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 5. Setup Attachment Archiver (optional)
	var archiver domain.AttachmentArchiver
	if cfg.ArchiveBucket != "" {
		s3Client, err := storage.NewS3Client(context.Background(), storage.ClientConfig{
			AccessKeyID:     cfg.ArchiveAccessKey,
			SecretAccessKey: cfg.ArchiveSecretKey,
			Region:          cfg.ArchiveRegion,
			Bucket:          cfg.ArchiveBucket,
			Endpoint:        cfg.ArchiveEndpoint,
		})
		if err != nil {
			logger.Log.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		uploader := storage.NewUploader(s3Client, cfg.ArchiveBucket)
		if err := uploader.TestConnection(context.Background()); err != nil {
			logger.Log.Warn("Archive bucket not reachable - attachment archiving may fail", "error", err)
		}
		archiver = usecase.NewS3Archiver(uploader, cfg.ArchiveThumbnails, cfg.ArchiveMaxThumbDim)
	} else {
		logger.Log.Warn("ARCHIVE_BUCKET not set - attachment bytes will not be archived")
	}

	// 6. Setup Dispatch Client
	dispatcher := dispatch.New(cfg.DispatchURL, false)

	// 7. Setup UseCases
	draftStore := memory.NewDraftStore()
	draftUC := usecase.NewDraftUsecase(usecase.DraftUsecaseDeps{
		Store:       draftStore,
		Dispatcher:  dispatcher,
		Submissions: submissionRepo,
		Archiver:    archiver,
	})
	contactUC := usecase.NewContactUsecase(dispatcher, submissionRepo)
	adminUC := usecase.NewAdminUsecase(submissionRepo)

	// 8. Setup Auth Provider (JWKS)
	// Assuming Supabase URL is like https://xyz.supabase.co
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Draft janitor - reap drafts idle past the TTL
	ttl := time.Duration(cfg.DraftTTLMinutes) * time.Minute
	janitor := cron.New()
	if _, err := janitor.AddFunc("@every 10m", func() {
		if n := draftUC.ReapIdleDrafts(ttl); n > 0 {
			logger.Log.Info("Reaped idle drafts", "count", n)
		}
	}); err != nil {
		logger.Log.Error("Failed to schedule draft janitor", "error", err)
		os.Exit(1)
	}
	janitor.Start()
	defer janitor.Stop()

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:    contactUC,
		DraftUC:      draftUC,
		AdminUC:      adminUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
