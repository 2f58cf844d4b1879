// Spin Bot - corporate site assistant API
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spinfactor/spinbot/internal/api"
	"github.com/spinfactor/spinbot/internal/catalog"
	"github.com/spinfactor/spinbot/internal/config"
	"github.com/spinfactor/spinbot/internal/contact"
	"github.com/spinfactor/spinbot/internal/dialogue"
	"github.com/spinfactor/spinbot/internal/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	sections := catalog.New()
	router := dialogue.New(sections)

	mailCfg := contact.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Pass,
		From:     cfg.Mail.From,
		To:       cfg.Mail.To,
		Timeout:  cfg.Mail.Timeout,
	}
	pipeline := contact.NewPipeline(mailCfg, contact.NewSMTPMailer(mailCfg))
	if cfg.Mail.Host == "" {
		slog.Warn("SMTP not configured, contact submissions will fail until it is")
	}

	handler := api.NewHandler(sections, router, pipeline, cfg.ContactRPS, cfg.ContactBurst)

	allowedOrigin := cfg.FrontendURL
	if cfg.IsDevelopment() {
		allowedOrigin = ""
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(allowedOrigin))

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
