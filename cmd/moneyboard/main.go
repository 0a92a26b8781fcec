package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moneyboard/internal/config"
	"moneyboard/internal/dashboard"
	"moneyboard/internal/log"
	"moneyboard/internal/selection"
	"moneyboard/internal/store"
	"moneyboard/internal/web"
)

func main() {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldOperation, log.OpStartup, log.FieldError, err)
		os.Exit(1)
	}

	st, err := store.New(store.Config{
		Type:              store.BackendType(cfg.DataBackend),
		BaseURL:           cfg.ServiceBaseURL,
		Timeout:           cfg.RequestTimeout,
		SummaryTTL:        cfg.SummaryCacheTTL,
		RequestsPerSecond: cfg.StoreRPS,
	}, logger.WithComponent(log.ComponentStore))
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldOperation, log.OpStartup,
			log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		os.Exit(1)
	}

	views := web.NewViewState(cfg.ChartWidth, cfg.ChartHeight, logger)
	orch := dashboard.New(st, views, logger)
	state := selection.NewState(time.Now())

	// Refresh work dispatched from handlers lives until shutdown, not
	// until the triggering request ends.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := web.NewServer(ctx, state, orch, views, logger)
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        server.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	// Populate the dashboard before the first request arrives.
	orch.RefreshAll(ctx, state.Snapshot())

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown, "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldOperation, log.OpShutdown, log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting moneyboard server",
		log.FieldOperation, log.OpStartup, "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	orch.Wait()
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
