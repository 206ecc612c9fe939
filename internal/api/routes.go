package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.CORSAllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	limit := func(next http.Handler) http.Handler { return next }
	if s.RateLimitEnabled {
		limit = rateLimitMiddleware(s.RateLimitRequests, s.RateLimitWindow)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/boss-data", s.handleBossData)
		r.With(limit).Post("/boss-data", s.handleIngest)
		r.With(limit).Post("/ingest", s.handleIngest)
		r.Post("/parse", s.handleParse)
		r.Get("/stats", s.handleStats)
		r.Get("/bosses", s.handleBosses)
		r.Get("/worlds", s.handleWorlds)
	})
	return r
}
