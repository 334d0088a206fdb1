package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/config"
	"github.com/csheth/quoteoftheday/internal/logger"
	"github.com/csheth/quoteoftheday/internal/quoteapi"
)

const defaultShutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	address := flag.String("address", "", "listen address (overrides server.address)")
	printConfig := flag.Bool("print-config", false, "print the effective configuration as YAML and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *address != "" {
		cfg.Server.Address = *address
	}
	if *printConfig {
		out, err := cfg.YAML()
		if err != nil {
			_, _ = os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
		_, _ = os.Stdout.Write(out)
		return
	}

	log, err := logger.New(cfg.Env, cfg.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting quote api", zap.Int("seed_quotes", len(cfg.Server.SeedQuotes)))
	log.Debug("debug messages are enabled")

	book := quoteapi.NewBook(cfg.Server.SeedQuotes)
	defer func() {
		log.Info("closing quote book")
		if err := book.Close(); err != nil {
			log.Error("failed to close quote book", zap.Error(err))
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      quoteapi.NewRouter(log, book),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-done
	log.Info("stopping server")

	shutdownTimeout := defaultShutdownTimeout
	if cfg.Server.Timeout > 0 {
		shutdownTimeout = cfg.Server.Timeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server gracefully", zap.Error(err))
	}
	log.Info("server stopped")
}
