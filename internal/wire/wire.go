package wire

import (
	"time"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the HTTP surface and the background pieces main has to run.
type App struct {
	Router  *chi.Mux
	Limiter *middleware.RateLimiter
}

// Options carry the collaborators built in main.
type Options struct {
	Service  *usecase.Service
	Verifier middleware.TokenVerifier
	Pinger   adaptor.Pinger
}

// Wiring builds handlers and the router.
func Wiring(opts Options, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(opts.Service, opts.Pinger, logger)
	limiter := middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst, 10*time.Minute)

	return &App{
		Router:  setupRouter(handler, opts.Verifier, limiter, config, logger),
		Limiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	verifier middleware.TokenVerifier,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	r.Get("/health", handler.Health.Health)

	routes := routeDeps{
		auth:     middleware.Authenticate(verifier, logger),
		optional: middleware.OptionalAuth(verifier, logger),
		limit:    limiter.Limit,
	}

	wirePackage(r, handler.Package)
	wireTracking(r, handler.Tracking)
	wireBooking(r, handler.Booking, routes)
	wireTourRequest(r, handler.TourRequest, routes)
	wireCustomBooking(r, handler.CustomBooking, routes)

	return r
}
