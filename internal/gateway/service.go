package gateway

import (
	"context"
	"log/slog"
	"slices"

	"github.com/neexbeast/weather-gateway/internal/weatherapi"
)

const (
	ServiceName   = "weather-gateway"
	healthMessage = "Weather Dashboard API is running!"
	healthStatus  = "healthy"
)

// Endpoints is the catalogue advertised by HealthCheck.
var Endpoints = []string{
	"/docs - API documentation",
	"/api/weather/current/{city} - Current weather",
	"/api/weather/forecast/{city} - Weather forecast",
}

// Service translates gateway requests into upstream calls and upstream
// responses into public views. It holds no per-request state.
type Service struct {
	client *weatherapi.Client
	log    *slog.Logger
}

// NewService constructs a Service around an upstream client.
func NewService(client *weatherapi.Client, log *slog.Logger) *Service {
	return &Service{client: client, log: log}
}

// GetCurrentConditions returns the current weather for a place name or a
// "lat,lon" pair. Failures are always *Error.
func (s *Service) GetCurrentConditions(ctx context.Context, query string) (*CurrentConditions, error) {
	loc := ResolveLocation(query)
	s.log.Debug("fetching current conditions", "query", loc.Query, "location_kind", loc.Kind.String())

	raw, err := s.client.Current(ctx, loc.Query)
	if err != nil {
		return nil, classify(OpCurrent, query, err)
	}

	view, err := toCurrentConditions(raw)
	if err != nil {
		return nil, classify(OpCurrent, query, err)
	}
	return view, nil
}

// GetForecast returns a daily forecast. days outside [1,14] is reset to 7.
// Failures are always *Error.
func (s *Service) GetForecast(ctx context.Context, query string, days int) (*Forecast, error) {
	loc := ResolveLocation(query)
	clamped := ClampDays(days)
	if clamped != days {
		s.log.Debug("forecast days out of range, using default", "requested", days, "days", clamped)
	}
	s.log.Debug("fetching forecast", "query", loc.Query, "location_kind", loc.Kind.String(), "days", clamped)

	raw, err := s.client.Forecast(ctx, loc.Query, clamped)
	if err != nil {
		return nil, classify(OpForecast, query, err)
	}

	view, err := toForecast(raw)
	if err != nil {
		return nil, classify(OpForecast, query, err)
	}
	return view, nil
}

// HealthCheck returns the static status payload. It never calls upstream.
func (s *Service) HealthCheck() Health {
	return Health{
		Message:   healthMessage,
		Status:    healthStatus,
		Service:   ServiceName,
		Endpoints: slices.Clone(Endpoints),
	}
}
