package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/weather-gateway/internal/gateway"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	weather WeatherService
	log     *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(weather WeatherService, log *slog.Logger) *Handlers {
	return &Handlers{
		weather: weather,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes the {"detail": msg} error body the web client reads.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// locationParam returns the {location} path segment, percent-decoded.
func locationParam(r *http.Request) string {
	loc := chi.URLParam(r, "location")
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(loc); err == nil {
			return decoded
		}
	}
	return loc
}

// Health handles GET /.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.weather.HealthCheck())
}

// GetCurrentConditions handles GET /api/weather/current/{location}.
func (h *Handlers) GetCurrentConditions(w http.ResponseWriter, r *http.Request) {
	location := locationParam(r)

	view, err := h.weather.GetCurrentConditions(r.Context(), location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetForecast handles GET /api/weather/forecast/{location}?days=N.
// days defaults to 7; out-of-range values are clamped by the gateway.
func (h *Handlers) GetForecast(w http.ResponseWriter, r *http.Request) {
	location := locationParam(r)

	days := gateway.DefaultForecastDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "days must be an integer")
			return
		}
		days = n
	}

	view, err := h.weather.GetForecast(r.Context(), location, days)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// subjects holds the capitalized and lower-case subject used in error details.
var subjects = map[gateway.Op][2]string{
	gateway.OpCurrent:  {"Weather data", "weather data"},
	gateway.OpForecast: {"Forecast", "forecast"},
}

// writeError translates a gateway error into 400, 408 or 500.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		h.log.Error("unclassified gateway error", "path", r.URL.Path, "err", err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	subject, ok := subjects[gwErr.Op]
	if !ok {
		subject = subjects[gateway.OpCurrent]
	}

	logArgs := []any{"op", string(gwErr.Op), "location", gwErr.Query, "kind", gwErr.Kind.String(), "err", err}

	switch gwErr.Kind {
	case gateway.KindBadRequest:
		h.log.Warn("upstream rejected request", logArgs...)
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("%s not available for %s: %s", subject[0], gwErr.Query, gwErr.Message))
	case gateway.KindTimeout:
		h.log.Warn("upstream timed out", logArgs...)
		writeDetail(w, http.StatusRequestTimeout, "Request timeout")
	default:
		h.log.Error("upstream call failed", logArgs...)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s: %s", subject[1], gwErr.Message))
	}
}
