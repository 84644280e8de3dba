package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/travel-planner/backend/internal/config"
	"github.com/travel-planner/backend/internal/metrics"
	"github.com/travel-planner/backend/internal/repository/postgres"
	redisrepo "github.com/travel-planner/backend/internal/repository/redis"
	"github.com/travel-planner/backend/internal/service/auth"
	"github.com/travel-planner/backend/internal/service/token"
	transportHttp "github.com/travel-planner/backend/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// Identity store (durable records)
	db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("Running database migrations...")
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Session state (key-value, TTL-governed)
	redisClient, err := redisrepo.NewClient(cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.RedisTimeoutSeconds)*time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	refreshTTL := time.Duration(cfg.RefreshTokenTTLDays) * 24 * time.Hour
	accessTTL := time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute

	userRepo := postgres.NewUserRepo(db)
	sessionStore := redisrepo.NewSessionStore(redisClient, refreshTTL)
	revocationStore := redisrepo.NewRevocationStore(redisClient)
	tokenProvider := token.NewProvider(cfg.JWTSecret, accessTTL, refreshTTL)
	grantRevoker := auth.NewGoogleGrantRevoker(config.GoogleRevokeURL)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	authService := auth.NewService(userRepo, sessionStore, revocationStore, tokenProvider, grantRevoker, collector)

	rateLimiter := transportHttp.NewRateLimiter()
	defer rateLimiter.Stop()

	router := transportHttp.NewRouter(&transportHttp.RouterDeps{
		AuthHandler:       transportHttp.NewAuthHandler(authService),
		OAuthHandler:      transportHttp.NewOAuthHandler(&cfg.OAuthConfig, authService, cfg.FrontendURL),
		UserHandler:       transportHttp.NewUserHandler(userRepo),
		TokenVerifier:     tokenProvider,
		RevocationChecker: revocationStore,
		AllowedOrigins:    cfg.AllowedOrigins,
		Registry:          registry,
		RateLimiter:       rateLimiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
