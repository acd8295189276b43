package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "taskdesk/docs"
	"taskdesk/internal/config"
	"taskdesk/internal/handlers"
	"taskdesk/internal/logger"
	"taskdesk/internal/repository"
	"taskdesk/internal/repository/db"
	"taskdesk/internal/server"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title                       taskdesk API
// @version                     1.0
// @description                 Per-user tasks and tickets behind bearer-token auth.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		// logger is not configured yet
		logger.New(logger.InfoLevel, false).Fatalw("error loading config", "err", err)
	}

	log := logger.New(cfg.Log.Level, cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.InitDB(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	dialect, err := repository.DialectFor(cfg.DB.Driver)
	if err != nil {
		log.Fatalw("unsupported database driver", "driver", cfg.DB.Driver, "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(conn, dialect, cfg.DB.QueryTimeout)
	services := service.NewService(repos, service.Deps{
		Hasher: service.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens: service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.PreviousSecrets...),
		Log:    log,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := server.New(cfg.HTTP.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)
	log.Infow("server_started", "addr", srv.Addr(), "env", cfg.App.Env, "db_driver", cfg.DB.Driver)

	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
