package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doordash-adapter/internal/api"
	"doordash-adapter/internal/buildinfo"
	"doordash-adapter/internal/config"
	"doordash-adapter/internal/logger"
	"doordash-adapter/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.LogLevel)

	if cfg.APIKey == "" {
		log.Warn("SSP_API_KEY is not set; every order request will be rejected")
	}
	if cfg.ProviderWebhookSecret == "" {
		log.Warn("DOORDASH_WEBHOOK_SECRET is not set; every webhook will be rejected")
	}

	metrics.RegisterDefault()
	srv, err := api.NewServer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to init server")
	}
	defer func() { _ = srv.Broker.Close() }()

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).WithField("version", buildinfo.Version).Info("adapter listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
