// @title EventHub Backend API
// @version 1.0
// @description User accounts and events with bearer-token authentication

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	_ "github.com/eventhub-app/backend/docs" // generated swagger spec
	"github.com/eventhub-app/backend/internal/config"
	"github.com/eventhub-app/backend/internal/handlers"
	"github.com/eventhub-app/backend/internal/middleware"
	"github.com/eventhub-app/backend/internal/routes"
	"github.com/eventhub-app/backend/internal/store/postgres"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	dsn := cfg.GetDSN()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse dsn")
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "eventhub-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("ping database")
		}
	}

	if err := postgres.MigrateUp(dsn); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	st, err := postgres.New(pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("init store")
	}

	authHandler := handlers.NewAuthHandler(st, cfg)
	usersHandler := handlers.NewUsersHandler(st)
	eventsHandler := handlers.NewEventsHandler(st)
	healthHandler := handlers.NewHealthHandler(st)
	googleAuthHandler := handlers.NewGoogleAuthHandler(st, cfg)

	mux := routes.New(st, cfg, authHandler, usersHandler, eventsHandler, healthHandler, googleAuthHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	handler := middleware.RequestLogging(logger)(c.Handler(mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}
