// Command gateway runs the Fireblocks gateway: an HTTP service that
// brokers custody API operations for trusted internal callers while
// keeping the API credentials inside this single process.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
	"github.com/relaedzc/simple-fireblocks-service/internal/credentials"
	"github.com/relaedzc/simple-fireblocks-service/internal/fireblocks"
	"github.com/relaedzc/simple-fireblocks-service/internal/httpapi"
	"github.com/relaedzc/simple-fireblocks-service/internal/logging"
)

const version = "1.0.0"

func main() {
	// Optional .env for local development; production uses real env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[gateway] skipping .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[gateway] load config: %v", err)
	}

	logger, err := logging.New(httpapi.ServiceName, cfg.Debug)
	if err != nil {
		log.Fatalf("[gateway] init logger: %v", err)
	}
	defer logger.Sync()

	// The factory defers credential loading to first use; a bad credential
	// leaves the service up but degraded so the health endpoint can report
	// it. Probe once at startup to surface deployment errors early.
	factory := fireblocks.NewFactory(func() (*fireblocks.Client, error) {
		cred, err := credentials.Load(cfg.Backend)
		if err != nil {
			return nil, err
		}
		return fireblocks.New(cfg.Backend, cfg.Retry, cred)
	})
	if _, err := factory.Client(); err != nil {
		logger.Error("backend client initialization failed; serving degraded", zap.Error(err))
	}

	router := httpapi.NewRouter(factory, logger, cfg.Limits, version)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
