package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds and returns the Chi router with all routes configured.
// All routes are public and read-only; CORS is applied globally so preflight
// requests are answered before routing.
func NewRouter(handlers *Handlers, allowedOrigins []string, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(CORS(allowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", handlers.Health)
	r.Get("/docs", DocsHandlerFunc(r))

	r.Route("/api/weather", func(r chi.Router) {
		r.Get("/current/{location}", handlers.GetCurrentConditions)
		r.Get("/forecast/{location}", handlers.GetForecast)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
