/*
Package main is the entry point for the board server.

It loads configuration, initializes the global logger, connects PostgreSQL
(running migrations), opens the chat history store and object storage, wires
the realtime relays into the HTTP router, and shuts everything down in order on
SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardrtc/internal/app/db"
	dbc "boardrtc/internal/app/db/sqlc"
	"boardrtc/internal/app/history"
	"boardrtc/internal/app/realtime"
	"boardrtc/internal/app/storage"
	"boardrtc/internal/configs"
	"boardrtc/internal/handler"
	"boardrtc/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("history_backend", cfg.HistoryBackend).
		Bool("storage_enabled", cfg.StorageEnabled()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	historyStore, closeHistory, err := history.Open(ctx, cfg, pool)
	if err != nil {
		logx.Fatal(err, "Failed to open chat history store", "backend", cfg.HistoryBackend)
	}
	defer func() {
		if err := closeHistory(); err != nil {
			logx.Error(err, "Failed to close chat history store")
		}
	}()

	var storageService storage.StorageService
	if cfg.StorageEnabled() {
		storageService, err = storage.NewStorageService(ctx, storage.ConfigFrom(cfg))
		if err != nil {
			logx.Fatal(err, "Failed to initialize object storage")
		}
	} else {
		logx.Warn("S3 storage is not configured; file routes are disabled")
	}

	chatRelay := realtime.NewChatRelay(realtime.NewRegistry[realtime.Conn](), historyStore)
	signalRelay := realtime.NewSignalRelay(realtime.NewRegistry[string]())

	router := handler.Router(&handler.AppDeps{
		Config:  cfg,
		DB:      dbc.New(pool),
		Storage: storageService,
		Chat:    chatRelay,
		Signal:  signalRelay,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Board server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	// Hijacked WebSocket connections are not tracked by server.Shutdown.
	closed := closeAll(chatRelay.Shutdown()) + closeAll(signalRelay.Shutdown())
	logx.Info("Server gracefully stopped.", "realtime_connections_closed", closed)
}

// closeAll closes every connection that supports it and returns how many did.
func closeAll(conns []realtime.Conn) int {
	n := 0
	for _, conn := range conns {
		if c, ok := conn.(interface{ Close() }); ok {
			c.Close()
			n++
		}
	}
	return n
}
