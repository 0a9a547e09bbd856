package httpapi

import (
	"github.com/gorilla/mux"

	"github.com/relaedzc/simple-fireblocks-service/internal/config"
	"github.com/relaedzc/simple-fireblocks-service/internal/fireblocks"
	"github.com/relaedzc/simple-fireblocks-service/internal/logging"
	"github.com/relaedzc/simple-fireblocks-service/internal/metrics"
	"github.com/relaedzc/simple-fireblocks-service/internal/middleware"
)

// NewRouter assembles the gateway router: logging, metrics and rate-limit
// middleware around the operation handlers, plus the Prometheus endpoint.
func NewRouter(factory *fireblocks.Factory, logger *logging.Logger, limits config.LimitConfig, version string) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())
	limiter := middleware.NewRateLimiter(limits.RequestsPerSecond, limits.Burst)
	r.Use(limiter.Handler)

	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	New(factory, logger, version).Register(r)
	return r
}
