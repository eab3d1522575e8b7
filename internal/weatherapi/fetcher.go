package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTimeout is returned when an upstream call does not complete within its timeout.
var ErrTimeout = errors.New("upstream request timed out")

// StatusError is returned when upstream answers with a non-200 status.
type StatusError struct {
	StatusCode int
	// Code is WeatherAPI's own error code (e.g. 1006 "No matching location found"),
	// zero when the body was not an error envelope.
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// JSONFetcher fetches a JSON document from endpoint with the given query
// params and decodes it into dst. The call is abandoned after timeout.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, endpoint string, params url.Values, timeout time.Duration, dst any) error
}

// HTTPFetcher is the JSONFetcher backed by net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher using a fresh http.Client. Timeouts are
// applied per call from the timeout argument.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{}}
}

// NewHTTPFetcherWithClient returns an HTTPFetcher using the given client (for tests).
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// FetchJSON performs a GET request and decodes the JSON response into dst.
// Errors never include the query string, which carries the API key.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, endpoint string, params url.Values, timeout time.Duration, dst any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rawURL := endpoint
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("GET %s: %w", endpoint, ErrTimeout)
		}
		return fmt.Errorf("GET %s: %w", endpoint, stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("reading response from %s: %w", endpoint, ErrTimeout)
		}
		return fmt.Errorf("reading response from %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}

	return nil
}

// newStatusError extracts the upstream error text, preferring WeatherAPI's
// {"error": {"code", "message"}} envelope over the raw body.
func newStatusError(status int, body []byte) *StatusError {
	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &StatusError{StatusCode: status, Code: envelope.Error.Code, Message: envelope.Error.Message}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &StatusError{StatusCode: status, Message: msg}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// stripURL drops the *url.Error wrapper so the request URL, and with it the
// API key, does not leak into error messages.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
