package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventhub/config"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/cache"
	httpdelivery "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"
)

const (
	bcryptCost     = 10
	serviceTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	listingCache := cache.NewEventListingCache(cfg.CacheTTL)

	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	eventService := services.NewEventService(eventRepo, listingCache, serviceTimeout)
	attendeeService := services.NewAttendeeService(eventRepo, registrationRepo, userRepo)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	attendeeController := controllers.NewAttendeeController(logger, attendeeService)

	mux := httpdelivery.NewRouter(authController, eventController, attendeeController, tokenVerifier, logger)
	var handler http.Handler = middleware.LoggingMiddleware(logger, mux)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
