package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/weather-gateway/internal/gateway"
	"github.com/neexbeast/weather-gateway/internal/weatherapi"
)

// ---- fake upstream ----

type fakeFetcher struct {
	calls   int
	lastURL string
	last    url.Values
	fetchFn func(endpoint string, params url.Values) (string, error)
}

func (f *fakeFetcher) FetchJSON(_ context.Context, endpoint string, params url.Values, _ time.Duration, dst any) error {
	f.calls++
	f.lastURL = endpoint
	f.last = params
	body, err := f.fetchFn(endpoint, params)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), dst)
}

func respond(body string) func(string, url.Values) (string, error) {
	return func(string, url.Values) (string, error) { return body, nil }
}

func fail(err error) func(string, url.Values) (string, error) {
	return func(string, url.Values) (string, error) { return "", err }
}

func newService(f weatherapi.JSONFetcher) *gateway.Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := weatherapi.NewClient(f, "https://upstream.test/v1", "test-key", 10*time.Second)
	return gateway.NewService(client, log)
}

const currentBody = `{
	"location": {"name": "London", "region": "City of London, Greater London", "country": "United Kingdom", "lat": 51.52, "lon": -0.11},
	"current": {
		"last_updated": "2024-05-01 12:00",
		"temp_c": 14.0, "temp_f": 57.2,
		"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png", "code": 1003},
		"wind_kph": 13.0, "wind_degree": 250, "pressure_mb": 1012.0,
		"humidity": 72, "feelslike_c": 12.9, "feelslike_f": 55.2, "uv": 4.0,
		"cloud": 50, "vis_km": 10.0
	}
}`

func forecastBody(n int) string {
	days := make([]map[string]any, 0, n)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		days = append(days, map[string]any{
			"date": start.AddDate(0, 0, i).Format("2006-01-02"),
			"day": map[string]any{
				"maxtemp_c": 20.0 + float64(i), "maxtemp_f": 68.0 + float64(i),
				"mintemp_c": 10.0 + float64(i), "mintemp_f": 50.0 + float64(i),
				"maxwind_kph": 15.5, "totalprecip_mm": 1.2, "uv": 5.0,
				"condition": map[string]any{"text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png"},
			},
			"astro": map[string]any{"sunrise": "05:32 AM", "sunset": "08:24 PM"},
		})
	}
	b, _ := json.Marshal(map[string]any{
		"location": map[string]any{"name": "Paris", "country": "France"},
		"forecast": map[string]any{"forecastday": days},
	})
	return string(b)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ---- GetCurrentConditions ----

func TestGetCurrentConditions_MapsFields(t *testing.T) {
	f := &fakeFetcher{fetchFn: respond(currentBody)}
	svc := newService(f)

	view, err := svc.GetCurrentConditions(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, "London", view.City)
	assert.Equal(t, "United Kingdom", view.Country)
	assert.Equal(t, "City of London, Greater London", view.Region)
	assert.Equal(t, 51.52, view.Coordinates.Lat)
	assert.Equal(t, -0.11, view.Coordinates.Lon)
	assert.Equal(t, 14.0, view.Current.TemperatureC)
	assert.Equal(t, 57.2, view.Current.TemperatureF)
	assert.Equal(t, "Partly cloudy", view.Current.Condition)
	assert.Equal(t, "//cdn.weatherapi.com/weather/64x64/day/116.png", view.Current.Icon)
	assert.Equal(t, 72, view.Current.Humidity)
	assert.Equal(t, 13.0, view.Current.WindSpeedKph)
	assert.Equal(t, 250, view.Current.WindDirection)
	assert.Equal(t, 1012.0, view.Current.PressureMb)
	assert.Equal(t, 4.0, view.Current.UVIndex)
	assert.Equal(t, 12.9, view.Current.FeelsLikeC)
	assert.Equal(t, 55.2, view.Current.FeelsLikeF)
	assert.Equal(t, "2024-05-01 12:00", view.LastUpdated)

	assert.Equal(t, "https://upstream.test/v1/current.json", f.lastURL)
	assert.Equal(t, "no", f.last.Get("aqi"))
	assert.Equal(t, "test-key", f.last.Get("key"))
}

func TestGetCurrentConditions_ExactFieldSet(t *testing.T) {
	svc := newService(&fakeFetcher{fetchFn: respond(currentBody)})

	view, err := svc.GetCurrentConditions(context.Background(), "London")
	require.NoError(t, err)

	b, err := json.Marshal(view)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(b, &body))

	assert.Equal(t, []string{"city", "coordinates", "country", "current", "last_updated", "region"}, keys(body))
	assert.Equal(t, []string{"lat", "lon"}, keys(body["coordinates"].(map[string]any)))
	assert.Equal(t, []string{
		"condition", "feels_like_c", "feels_like_f", "humidity", "icon", "pressure_mb",
		"temperature_c", "temperature_f", "uv_index", "wind_direction", "wind_speed_kph",
	}, keys(body["current"].(map[string]any)))
}

func TestGetCurrentConditions_LocationPassedUnmodified(t *testing.T) {
	for _, q := range []string{"51.5,-0.12", "London", "New York", "Paris, France"} {
		f := &fakeFetcher{fetchFn: respond(currentBody)}
		_, err := newService(f).GetCurrentConditions(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, q, f.last.Get("q"))
	}
}

func TestGetCurrentConditions_UpstreamBadRequest(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound} {
		f := &fakeFetcher{fetchFn: fail(&weatherapi.StatusError{StatusCode: status, Code: 1006, Message: "No matching location found."})}

		_, err := newService(f).GetCurrentConditions(context.Background(), "Atlantis")
		require.Error(t, err)

		var gwErr *gateway.Error
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, gateway.KindBadRequest, gwErr.Kind)
		assert.Equal(t, gateway.OpCurrent, gwErr.Op)
		assert.Equal(t, "Atlantis", gwErr.Query)
		assert.Equal(t, "No matching location found.", gwErr.Message)
		assert.Contains(t, err.Error(), "Atlantis")
	}
}

func TestGetCurrentConditions_Timeout(t *testing.T) {
	f := &fakeFetcher{fetchFn: fail(fmt.Errorf("GET x: %w", weatherapi.ErrTimeout))}

	_, err := newService(f).GetCurrentConditions(context.Background(), "London")
	require.Error(t, err)
	assert.Equal(t, gateway.KindTimeout, gateway.KindOf(err))
}

func TestGetCurrentConditions_NetworkErrorIsInternal(t *testing.T) {
	f := &fakeFetcher{fetchFn: fail(errors.New("connection refused"))}

	_, err := newService(f).GetCurrentConditions(context.Background(), "London")
	require.Error(t, err)

	var gwErr *gateway.Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, gateway.KindInternal, gwErr.Kind)
	assert.Contains(t, gwErr.Message, "connection refused")
}

func TestGetCurrentConditions_MissingBlockIsInternal(t *testing.T) {
	bodies := map[string]string{
		"no location":  `{"current": {"temp_c": 1, "condition": {"text": "x"}}}`,
		"no current":   `{"location": {"name": "London"}}`,
		"no condition": `{"location": {"name": "London"}, "current": {"temp_c": 1}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := newService(&fakeFetcher{fetchFn: respond(body)}).GetCurrentConditions(context.Background(), "London")
			require.Error(t, err)
			assert.Equal(t, gateway.KindInternal, gateway.KindOf(err))
			assert.ErrorIs(t, err, gateway.ErrMalformedPayload)
		})
	}
}

func TestGetCurrentConditions_MalformedJSONIsInternal(t *testing.T) {
	_, err := newService(&fakeFetcher{fetchFn: respond(`{"location": "nope"}`)}).GetCurrentConditions(context.Background(), "London")
	require.Error(t, err)
	assert.Equal(t, gateway.KindInternal, gateway.KindOf(err))
}

// ---- GetForecast ----

func TestGetForecast_MapsDaysInOrder(t *testing.T) {
	for days := gateway.MinForecastDays; days <= gateway.MaxForecastDays; days++ {
		f := &fakeFetcher{fetchFn: func(_ string, p url.Values) (string, error) {
			var n int
			_, err := fmt.Sscanf(p.Get("days"), "%d", &n)
			require.NoError(t, err)
			return forecastBody(n), nil
		}}

		view, err := newService(f).GetForecast(context.Background(), "Paris", days)
		require.NoError(t, err)
		require.Len(t, view.Forecast, days)
		assert.Equal(t, "Paris", view.City)
		assert.Equal(t, "France", view.Country)

		for i := 1; i < len(view.Forecast); i++ {
			assert.Less(t, view.Forecast[i-1].Date, view.Forecast[i].Date)
		}
	}
}

func TestGetForecast_DayFields(t *testing.T) {
	f := &fakeFetcher{fetchFn: respond(forecastBody(1))}

	view, err := newService(f).GetForecast(context.Background(), "Paris", 1)
	require.NoError(t, err)
	require.Len(t, view.Forecast, 1)

	d := view.Forecast[0]
	assert.Equal(t, "2024-05-01", d.Date)
	assert.Equal(t, 20.0, d.MaxTempC)
	assert.Equal(t, 10.0, d.MinTempC)
	assert.Equal(t, 68.0, d.MaxTempF)
	assert.Equal(t, 50.0, d.MinTempF)
	assert.Equal(t, "Sunny", d.Condition)
	assert.Equal(t, "//cdn.weatherapi.com/weather/64x64/day/113.png", d.Icon)
	assert.Equal(t, 1.2, d.PrecipitationMm)
	assert.Equal(t, 15.5, d.MaxWindKph)
	assert.Equal(t, 5.0, d.UVIndex)
	assert.Equal(t, "05:32 AM", d.Sunrise)
	assert.Equal(t, "08:24 PM", d.Sunset)

	assert.Equal(t, "https://upstream.test/v1/forecast.json", f.lastURL)
	assert.Equal(t, "no", f.last.Get("aqi"))
}

func TestGetForecast_OutOfRangeDaysBehaveLikeSeven(t *testing.T) {
	ref := &fakeFetcher{fetchFn: respond(forecastBody(7))}
	want, err := newService(ref).GetForecast(context.Background(), "Paris", 7)
	require.NoError(t, err)

	for _, days := range []int{0, 15, -3} {
		f := &fakeFetcher{fetchFn: respond(forecastBody(7))}
		got, err := newService(f).GetForecast(context.Background(), "Paris", days)
		require.NoError(t, err)
		assert.Equal(t, "7", f.last.Get("days"), "days=%d", days)
		assert.Equal(t, ref.last, f.last, "days=%d", days)
		assert.Equal(t, want, got, "days=%d", days)
	}
}

func TestGetForecast_EmptyForecastIsEmptyArray(t *testing.T) {
	f := &fakeFetcher{fetchFn: respond(`{"location": {"name": "Paris", "country": "France"}, "forecast": {"forecastday": []}}`)}

	view, err := newService(f).GetForecast(context.Background(), "Paris", 3)
	require.NoError(t, err)

	b, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"forecast":[]`)
}

func TestGetForecast_ErrorTiers(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want gateway.Kind
	}{
		{"bad request", &weatherapi.StatusError{StatusCode: 400, Message: "Parameter q is missing."}, gateway.KindBadRequest},
		{"timeout", fmt.Errorf("wrapped: %w", weatherapi.ErrTimeout), gateway.KindTimeout},
		{"internal", errors.New("boom"), gateway.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newService(&fakeFetcher{fetchFn: fail(tc.err)}).GetForecast(context.Background(), "Paris", 3)
			require.Error(t, err)

			var gwErr *gateway.Error
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, tc.want, gwErr.Kind)
			assert.Equal(t, gateway.OpForecast, gwErr.Op)
			assert.Equal(t, "Paris", gwErr.Query)
		})
	}
}

func TestGetForecast_MissingAstroIsInternal(t *testing.T) {
	body := `{"location": {"name": "Paris"}, "forecast": {"forecastday": [{"date": "2024-05-01", "day": {"condition": {"text": "Sunny"}}}]}}`

	_, err := newService(&fakeFetcher{fetchFn: respond(body)}).GetForecast(context.Background(), "Paris", 1)
	require.Error(t, err)
	assert.Equal(t, gateway.KindInternal, gateway.KindOf(err))
	assert.Contains(t, err.Error(), "forecastday[0].astro")
}

// ---- upstream timeout through the real HTTP fetcher ----

func TestGetCurrentConditions_SlowUpstreamTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := weatherapi.NewClient(weatherapi.NewHTTPFetcher(), srv.URL, "test-key", 50*time.Millisecond)
	svc := gateway.NewService(client, log)

	_, err := svc.GetCurrentConditions(context.Background(), "London")
	require.Error(t, err)
	assert.Equal(t, gateway.KindTimeout, gateway.KindOf(err))
}

// ---- HealthCheck ----

func TestHealthCheck_NoUpstreamCall(t *testing.T) {
	f := &fakeFetcher{fetchFn: func(string, url.Values) (string, error) {
		t.Fatal("upstream should not be called by HealthCheck")
		return "", nil
	}}

	h := newService(f).HealthCheck()

	assert.Equal(t, 0, f.calls)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, gateway.ServiceName, h.Service)
	assert.Contains(t, h.Endpoints, "/api/weather/current/{city} - Current weather")
	assert.Contains(t, h.Endpoints, "/api/weather/forecast/{city} - Weather forecast")
}

func TestHealthCheck_EndpointsNotShared(t *testing.T) {
	svc := newService(&fakeFetcher{})
	h := svc.HealthCheck()
	h.Endpoints[0] = "mutated"

	assert.NotEqual(t, "mutated", svc.HealthCheck().Endpoints[0])
}

// ---- ResolveLocation / ClampDays ----

func TestResolveLocation(t *testing.T) {
	cases := map[string]gateway.LocationKind{
		"51.5,-0.12":    gateway.LocationCoordinates,
		"51.5, -0.12":   gateway.LocationCoordinates,
		"London":        gateway.LocationPlaceName,
		"Paris, France": gateway.LocationPlaceName,
		"10115":         gateway.LocationPlaceName,
		"":              gateway.LocationPlaceName,
	}
	for q, want := range cases {
		loc := gateway.ResolveLocation(q)
		assert.Equal(t, want, loc.Kind, "query %q", q)
		assert.Equal(t, q, loc.Query)
	}
}

func TestClampDays(t *testing.T) {
	cases := map[int]int{-3: 7, 0: 7, 1: 1, 7: 7, 14: 14, 15: 7, 100: 7}
	for in, want := range cases {
		assert.Equal(t, want, gateway.ClampDays(in), "days=%d", in)
	}
}
