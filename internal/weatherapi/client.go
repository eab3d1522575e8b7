package weatherapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Client calls the WeatherAPI.com current and forecast endpoints.
type Client struct {
	fetcher JSONFetcher
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewClient constructs a Client. baseURL is the API root, e.g.
// "http://api.weatherapi.com/v1".
func NewClient(fetcher JSONFetcher, baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		fetcher: fetcher,
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// Current fetches current.json for the query, with air-quality data disabled.
func (c *Client) Current(ctx context.Context, query string) (*CurrentResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("aqi", "no")

	var raw CurrentResponse
	if err := c.fetcher.FetchJSON(ctx, c.baseURL+"/current.json", params, c.timeout, &raw); err != nil {
		return nil, fmt.Errorf("weatherapi current for %s: %w", query, err)
	}
	return &raw, nil
}

// Forecast fetches forecast.json for the query and number of days, with
// air-quality data disabled. days is sent as given.
func (c *Client) Forecast(ctx context.Context, query string, days int) (*ForecastResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", "no")

	var raw ForecastResponse
	if err := c.fetcher.FetchJSON(ctx, c.baseURL+"/forecast.json", params, c.timeout, &raw); err != nil {
		return nil, fmt.Errorf("weatherapi forecast for %s: %w", query, err)
	}
	return &raw, nil
}
