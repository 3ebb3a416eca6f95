package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewHandler builds the read API. metricsHandler and instrument may be nil.
func NewHandler(crosswordHandler *CrosswordHandler, allowedOrigins []string, instrument func(http.Handler) http.Handler, metricsHandler http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if instrument != nil {
		r.Use(instrument)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/", crosswordHandler.ListCrosswords)

	r.Route("/api", func(r chi.Router) {
		r.Get("/crosswords", crosswordHandler.ListCrosswords)
		r.Get("/health", crosswordHandler.Health)
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}
