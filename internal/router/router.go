package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/actuallystonmai/travel-recommendation-service/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	// RateLimitRequests <= 0 disables rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func DefaultOptions() Options {
	return Options{
		RequestTimeout:     30 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
	}
}

func Setup(h *handler.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(prometheusMetrics)
	r.Use(corsHandler(opts.CORSAllowedOrigins))
	if opts.RateLimitRequests > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimitRequests, opts.RateLimitWindow))
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// Routes
	r.Get("/health", healthCheck)
	r.Post("/recommend", h.Recommend)
	r.Post("/recommend/batch", h.RecommendBatch)
	r.Get("/places", h.ListPlaces)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Every method and header is allowed. With no origins or "*" configured,
// the request origin is echoed back since a literal "*" is rejected by
// browsers on credentialed requests.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	return cors.Handler(opts)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
