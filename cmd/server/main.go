package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Aideepakchaudhary/chainmate/internal/api"
	"github.com/Aideepakchaudhary/chainmate/internal/config"
	"github.com/Aideepakchaudhary/chainmate/internal/logging"
	"github.com/Aideepakchaudhary/chainmate/pkg/chainmate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var host string
	var port int
	var envFile string

	flag.StringVar(&host, "host", "", "Host to bind the server to (overrides HOST)")
	flag.IntVar(&port, "port", 0, "Port to run the server on (overrides PORT)")
	flag.StringVar(&envFile, "env-file", "", "Path to a .env file (defaults to ./.env when present)")
	flag.Parse()

	cfg := config.Load(envFile)
	if host != "" {
		cfg.Host = host
	}
	if port > 0 {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger, writer, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		slog.Error("failed to initialize logger", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("failed to close log writer", "err", err)
		}
	}()

	core, err := chainmate.New(chainmate.Options{
		Config: chainmate.Config{
			TokenAPIBaseURL: cfg.TokenAPIBaseURL,
			TokenAPIKey:     cfg.GraphAPIKey,
			ModelProvider:   cfg.ModelProvider,
			ModelAPIKey:     cfg.ModelAPIKey,
			ModelBaseURL:    cfg.ModelBaseURL,
			Model:           cfg.ModelName,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to initialize core", "err", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           api.NewRouter(core, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "model_provider", cfg.ModelProvider)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", "signal", fmt.Sprint(sig))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "err", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}
}
