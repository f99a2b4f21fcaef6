package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	_ "github.com/lib/pq"

	httpapi "g2p-portal-backend/internal/api/http"
	"g2p-portal-backend/internal/cache"
	"g2p-portal-backend/internal/config"
	"g2p-portal-backend/internal/jobs"
	"g2p-portal-backend/internal/lock"
	"g2p-portal-backend/internal/logger"
	"g2p-portal-backend/internal/repository/postgres"
	"g2p-portal-backend/internal/scheduler"
	"g2p-portal-backend/internal/security"
	"g2p-portal-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting G2P Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Redis. The portal runs without it: the field cache and
	// submission lock fall back to in-process variants.
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("Invalid redis url", "error", err)
			log.Fatalf("Invalid redis url: %v", err)
		}
		rdb = redis.NewClient(opts)
		logger.Info("Redis client configured", "addr", opts.Addr)
	} else {
		logger.Warn("Redis not configured, using in-process cache and locks")
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Partner field allow-list cache, sourced from the live table schema
	fieldCache := cache.NewPartnerFieldCache(store.PartnerRepository.ListColumns, rdb, 24*time.Hour)

	// Submission lock
	var locker lock.Locker
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb)
	} else {
		locker = lock.NewLocalLocker()
	}

	// Initialize Services
	var emailSvc service.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailSvc = service.NewEmailService(cfg.SendGrid)
	} else {
		logger.Warn("SendGrid not configured, submission emails disabled")
	}

	membershipSvc := service.NewMembershipService(store.MembershipRepository)
	partnerSvc := service.NewPartnerService(store.PartnerRepository, fieldCache)
	programSvc := service.NewProgramService(
		store.ProgramRepository,
		store.MembershipRepository,
		store.RegistrantInfoRepository,
		store.SummaryRepository,
	)
	formSvc := service.NewFormService(
		store.ProgramRepository,
		store.RegistrantInfoRepository,
		store.DraftRepository,
		store.PartnerRepository,
		membershipSvc,
		partnerSvc,
		emailSvc,
		locker,
	)
	documentSvc := service.NewDocumentService(store.DocumentRepository, cfg.Storage.FilestorePath)

	// Initialize scheduled jobs
	jobRunner := jobs.NewJobRunner(store, fieldCache, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Set up HTTP server
	server := httpapi.NewServer(programSvc, formSvc, partnerSvc, documentSvc, fieldCache, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), server.Router()); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
