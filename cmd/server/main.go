package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contesthub/internal/api"
	"contesthub/internal/app/service"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/cache"
	"contesthub/internal/platform/config"
	"contesthub/internal/platform/database"
	"contesthub/internal/platform/logger"
	"contesthub/internal/platform/payments"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init("contesthub", cfg.Debug)
	log.Info().Msg("configuration loaded")

	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Msg("database connected")

	// The cache is optional. Without Redis the service still works,
	// popular and leaderboard queries just hit Postgres every time.
	var contestCache *cache.Cache
	redisClient, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		contestCache = cache.New(redisClient, cfg.CacheTTL)
		log.Info().Msg("redis connected")
	}

	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)

	userRepo := repository.NewPgUserRepository(db)
	contestRepo := repository.NewPgContestRepository(db)
	submissionRepo := repository.NewPgSubmissionRepository(db)
	paymentRepo := repository.NewPgPaymentRepository(db)

	processor := payments.NewStripeProcessor(cfg.StripeSecretKey, cfg.StripeCurrency)

	authService := service.NewAuthService(tokens)
	userService := service.NewUserService(userRepo, paymentRepo, submissionRepo, contestRepo)
	contestService := service.NewContestService(contestRepo, contestCache)
	submissionService := service.NewSubmissionService(submissionRepo, contestRepo, paymentRepo, db)
	paymentService := service.NewPaymentService(paymentRepo, contestRepo, processor, db)

	router := api.NewRouter(api.RouterDeps{
		Tokens:            tokens,
		UserRepo:          userRepo,
		AuthService:       authService,
		UserService:       userService,
		ContestService:    contestService,
		SubmissionService: submissionService,
		PaymentService:    paymentService,
		CORSOrigins:       cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Str("port", cfg.APIPort).Msg("server failed")
		}
	}()

	<-stop

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server stopped gracefully")
}
