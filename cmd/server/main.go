package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shorturl/internal/container"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	drainTimeout      = 30 * time.Second
)

func registerPackages(injector *do.Injector, options *container.Options) {
	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.MetricsPackage(injector)
	container.PostgresPackage(injector)
	container.RedisPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.HealthPackage(injector)
	container.HTTPPackage(injector)
}

// newServer resolves the HTTP stack. Resolving the API opens the link store,
// so an unreachable backend ends the process before it listens.
func newServer(injector *do.Injector, options *container.Options, logger *zap.Logger) *http.Server {
	if _, err := do.Invoke[huma.API](injector); err != nil {
		logger.Fatal("link store unavailable", zap.String("store", options.Store), zap.Error(err))
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", options.Port),
		Handler:           do.MustInvoke[*chi.Mux](injector),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// drain stops accepting requests, waits for in-flight ones, then closes the store connections.
func drain(server *http.Server, injector *do.Injector, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("http drain error", zap.Error(err))
		}
	}

	if err := injector.Shutdown(); err != nil {
		logger.Error("closing store connections", zap.Error(err))
	}
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			server = newServer(injector, options, logger)

			logger.Info("url shortener listening",
				zap.Int("port", options.Port),
				zap.String("store", options.Store),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("listener failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("draining")
			drain(server, injector, logger)
			logger.Info("stopped")

			_ = logger.Sync()
		})
	})

	cli.Run()
}
