package api

import (
	"context"

	"github.com/neexbeast/weather-gateway/internal/gateway"
)

// WeatherService defines the gateway operations needed by handlers.
type WeatherService interface {
	GetCurrentConditions(ctx context.Context, query string) (*gateway.CurrentConditions, error)
	GetForecast(ctx context.Context, query string, days int) (*gateway.Forecast, error)
	HealthCheck() gateway.Health
}
