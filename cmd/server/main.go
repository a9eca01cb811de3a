package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actionanand/Ctrl-Alt-Del/internal/auth"
	"github.com/actionanand/Ctrl-Alt-Del/internal/config"
	"github.com/actionanand/Ctrl-Alt-Del/internal/database"
	"github.com/actionanand/Ctrl-Alt-Del/internal/handlers"
	"github.com/actionanand/Ctrl-Alt-Del/internal/mailer"
	"github.com/actionanand/Ctrl-Alt-Del/internal/repository"
	"github.com/actionanand/Ctrl-Alt-Del/internal/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Mail goes to SendGrid when a key is configured, otherwise it is logged and dropped
	var sender mailer.Sender
	if cfg.SendGridAPIKey != "" {
		sender = mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom)
	} else {
		sender = mailer.NewLogSender(logger)
	}
	dispatcher := mailer.NewDispatcher(sender, logger)

	// Initialize services
	store := repository.NewStore(db)
	tokenService := services.NewTokenService(store, auth.NewSigner(cfg.JWTSecret))
	userService := services.NewUserService(store, tokenService, dispatcher)
	taskService := services.NewTaskService(store)

	// Initialize handlers
	r := gin.Default()
	handlers.RegisterRoutes(r,
		tokenService,
		handlers.NewUserHandler(userService, tokenService),
		taskService,
		handlers.NewTaskHandler(taskService),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	dispatcher.Wait()

	if err := database.Close(db); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	logger.Info("server stopped")
}
