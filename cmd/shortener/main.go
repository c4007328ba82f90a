package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KretovDmitry/shorturl/internal/config"
	"github.com/KretovDmitry/shorturl/internal/handler"
	"github.com/KretovDmitry/shorturl/internal/logger"
	"github.com/KretovDmitry/shorturl/internal/repository"
	"github.com/KretovDmitry/shorturl/internal/validator"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/acme/autocert"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.MustLoad()

	logger := logger.New(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	store, err := repository.NewEntryStore(serverCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("new store: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil {
				logger.Errorf("close store: %v", cerr)
			}
		}()
	}

	v, err := validator.NewFromConfig(cfg.Validator)
	if err != nil {
		return fmt.Errorf("new validator: %w", err)
	}

	h, err := handler.New(store, v, cfg, logger)
	if err != nil {
		return fmt.Errorf("new handler: %w", err)
	}

	hs := &http.Server{
		Addr:              cfg.Server.RunAddress.String(),
		Handler:           h.Register(chi.NewRouter()),
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	shutdownErr := make(chan error, 1)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT)

		select {
		case s := <-sig:
			logger.With(serverCtx, "signal", s.String()).
				Infof("Shutting down server with %s timeout",
					cfg.Server.ShutdownTimeout)
		case <-serverCtx.Done():
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := hs.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("graceful shutdown failed: %w", err)
			return
		}
		shutdownErr <- nil
	}()

	logger.Infof("Server has started: %s", cfg.Server.RunAddress)
	switch cfg.TLSEnabled {
	case true:
		cm := &autocert.Manager{
			Cache:  autocert.DirCache("cache/certs"),
			Prompt: autocert.AcceptTOS,
		}
		hs.TLSConfig = cm.TLSConfig()
		logger.Info("The server is running over the SSL protocol")
		err = hs.ListenAndServeTLS("", "")
	default:
		err = hs.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for the connections to drain.
	return <-shutdownErr
}

func printBuildInfo() {
	if buildVersion == "" {
		fmt.Println("Build version: N/A")
	} else {
		fmt.Printf("Build version: %s\n", buildVersion)
	}
	if buildDate == "" {
		fmt.Println("Build date: N/A")
	} else {
		fmt.Printf("Build date: %s\n", buildDate)
	}
	if buildCommit == "" {
		fmt.Println("Build commit: N/A")
	} else {
		fmt.Printf("Build commit: %s\n", buildCommit)
	}
}
