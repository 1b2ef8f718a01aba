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

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/handler"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("contact-api", os.Getenv("LOG_LEVEL"))
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup("contact-api", cfg.LogLevel)

	// 接続できるまでリクエストを受け付けない
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	contactRepo, err := repository.Open(connectCtx, cfg.StoreOptions())
	cancelConnect()
	if err != nil {
		logging.Fatal("failed to connect to record store", "driver", cfg.StoreDriver, "error", err)
	}
	defer contactRepo.Close()
	slog.Info("record store connected", "driver", cfg.StoreDriver)

	contactService := service.NewContactService(contactRepo)

	h := handler.New(contactRepo, cfg.ClientURL)
	contactHandler := handler.NewContactHandler(contactService)

	var limiter *handler.RateLimiter
	if cfg.SubmitRateLimit > 0 {
		limiter = handler.NewRateLimiter(cfg.SubmitRateLimit, cfg.TrustedProxies)
		defer limiter.Close()
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(h, contactHandler, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "allowed_origin", cfg.ClientURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
