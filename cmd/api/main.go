package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/perfpulse/perfpulse-go/internal/config"
	"github.com/perfpulse/perfpulse-go/internal/crypto"
	"github.com/perfpulse/perfpulse-go/internal/handler"
	"github.com/perfpulse/perfpulse-go/internal/middleware"
	"github.com/perfpulse/perfpulse-go/internal/repository"
	"github.com/perfpulse/perfpulse-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		slog.Error("key generation failed", "error", err)
		os.Exit(1)
	}

	// MySQL when reachable, seeded in-memory repositories otherwise so
	// the API stays usable in demos and local development.
	var (
		userRepo   repository.UserRepository
		rewardRepo repository.RewardRepository
	)
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed — falling back to in-memory storage", "error", err)
		userRepo = repository.NewMemoryUserRepository()
		rewardRepo = repository.NewMemoryRewardRepository(repository.SeedRewards())
	} else {
		userRepo = repository.NewMySQLUserRepository(db)
		rewardRepo = repository.NewMySQLRewardRepository(db)
	}
	activityRepo := repository.NewMemoryActivityRepository(repository.SeedActivities())
	scoringRepo := repository.NewMemoryScoringRepository(repository.SeedScoringCriteria(), repository.SeedScoringFactors())

	authService := service.NewAuthService(userRepo, keys, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo)
	rewardService := service.NewRewardService(rewardRepo, userRepo)
	activityService := service.NewActivityService(activityRepo)
	scoringService := service.NewScoringService(scoringRepo, userRepo, activityRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	rewardHandler := handler.NewRewardHandler(rewardService)
	activityHandler := handler.NewActivityHandler(activityService)
	scoringHandler := handler.NewScoringHandler(scoringService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/api/health", handler.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/login", authHandler.HandleLogin)
		r.Post("/api/auth/register", authHandler.HandleRegister)
	})

	r.Get("/api/auth/public_key", authHandler.HandlePublicKey)
	r.Post("/api/auth/public_key", authHandler.HandlePublicKey)
	r.Post("/api/auth/logout", authHandler.HandleLogout)
	r.Get("/api/auth/session", authHandler.HandleSession)

	r.Get("/api/users/{userId}", userHandler.HandleGetUser)
	r.Get("/api/users/{userId}/achievements", userHandler.HandleAchievements)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Put("/api/users/{userId}", userHandler.HandleUpdateUser)
		r.Post("/api/users/{userId}/updateInfo", userHandler.HandleUpdateUser)
	})

	r.Get("/api/scoring/criteria", scoringHandler.HandleCriteria)
	r.Get("/api/scoring/factors", scoringHandler.HandleFactors)
	r.Get("/api/scoring/entries", scoringHandler.HandleEntries)
	r.Post("/api/scoring/calculate", scoringHandler.HandleCalculate)
	r.Get("/api/scoring/governance-metrics", scoringHandler.HandleGovernanceMetrics)
	r.Post("/api/scoring/governance-metrics", scoringHandler.HandleSaveGovernanceMetric)

	r.Route("/api/reward", func(r chi.Router) {
		r.Get("/", rewardHandler.HandleList)
		r.Post("/", rewardHandler.HandleCreate)
		r.Get("/redemptions", rewardHandler.HandleRedemptions)
		r.Post("/suggest-new", rewardHandler.HandleSuggestNew)
		r.Get("/{rewardId}", rewardHandler.HandleGet)
		r.Post("/{rewardId}/redeem", rewardHandler.HandleRedeem)
		r.Post("/{rewardId}/like", rewardHandler.HandleLike)
		r.Post("/{rewardId}/suggest", rewardHandler.HandleSuggest)
	})

	r.Get("/api/activities", activityHandler.HandleList)
	r.Get("/api/activities/recent", activityHandler.HandleRecent)
	r.Post("/api/activities", activityHandler.HandleCreate)
	r.Get("/api/activities/{activityId}", activityHandler.HandleGet)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("api server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
