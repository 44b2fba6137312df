package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthmate-app/healthmate-api/internal/application"
	appauth "github.com/healthmate-app/healthmate-api/internal/application/auth"
	appreports "github.com/healthmate-app/healthmate-api/internal/application/reports"
	appvitals "github.com/healthmate-app/healthmate-api/internal/application/vitals"
	"github.com/healthmate-app/healthmate-api/internal/config"
	"github.com/healthmate-app/healthmate-api/internal/domain/analysis"
	domreports "github.com/healthmate-app/healthmate-api/internal/domain/reports"
	domusers "github.com/healthmate-app/healthmate-api/internal/domain/users"
	domvitals "github.com/healthmate-app/healthmate-api/internal/domain/vitals"
	"github.com/healthmate-app/healthmate-api/internal/infra/ai/gemini"
	"github.com/healthmate-app/healthmate-api/internal/infra/ai/openai"
	"github.com/healthmate-app/healthmate-api/internal/infra/ai/stub"
	mysqlp "github.com/healthmate-app/healthmate-api/internal/infra/db/mysql"
	postgresp "github.com/healthmate-app/healthmate-api/internal/infra/db/postgres"
	"github.com/healthmate-app/healthmate-api/internal/infra/httpserver"
	minioStore "github.com/healthmate-app/healthmate-api/internal/infra/storage"
	"github.com/healthmate-app/healthmate-api/internal/middleware"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT secret is required (set JWT_SECRET or auth.jwtSecret)")
	}

	ctx := context.Background()

	// connect database
	var db *sql.DB
	var userRepo domusers.Repository
	var reportRepo domreports.Repository
	var vitalsRepo domvitals.Repository

	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		if err := postgresp.Migrate(ctx, db); err != nil {
			log.Fatalf("postgres migrate error: %v", err)
		}
		userRepo = postgresp.NewUserRepository(db)
		reportRepo = postgresp.NewReportRepository(db)
		vitalsRepo = postgresp.NewVitalsRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		if err := mysqlp.Migrate(ctx, db); err != nil {
			log.Fatalf("mysql migrate error: %v", err)
		}
		userRepo = mysqlp.NewUserRepository(db)
		reportRepo = mysqlp.NewReportRepository(db)
		vitalsRepo = mysqlp.NewVitalsRepository(db)
	}
	defer db.Close()

	// init minio (optional)
	var files domreports.FileStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		files = store
	} else {
		log.Printf("object storage disabled, report files will not be uploaded")
	}

	// init AI provider. A missing credential never prevents startup: analysis
	// requests get the unavailable fallback instead.
	var aiClient analysis.Client
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIAPIKey != "" {
			aiClient = openai.NewClient(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
		}
	case "stub":
		aiClient = stub.NewClient()
	default:
		if cfg.AI.GeminiAPIKey != "" {
			aiClient = gemini.NewClient(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		}
	}
	if aiClient == nil {
		log.Printf("warning: no AI credential configured (provider=%s), analysis is unavailable", cfg.AI.Provider)
	} else {
		log.Printf("AI provider: %s", aiClient.SourceName())
	}

	clock := application.SystemClock{}

	reportsSvc := &appreports.Service{
		Repo:  reportRepo,
		Files: files,
		AI:    aiClient,
		Clock: clock,
	}
	vitalsSvc := &appvitals.Service{
		Repo:  vitalsRepo,
		Clock: clock,
	}
	authSvc := &appauth.Service{
		Users:    userRepo,
		Secret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL: time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		Clock:    clock,
	}

	handler := httpserver.NewRouter(reportsSvc, vitalsSvc, authSvc, httpserver.Options{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		RateRPS:        cfg.Server.RateRPS,
		RateBurst:      cfg.Server.RateBurst,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HealthCheckers: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // inference can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
