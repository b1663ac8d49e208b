// Package jakim fetches official Malaysian prayer times from the waktusolat
// mirror of the JAKIM e-solat data.
package jakim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/metrics"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

const (
	DefaultBaseURL = "https://api.waktusolat.app/v2/solat"
	DefaultTimeout = 10 * time.Second
	userAgent      = "solat/1.0"
)

// Client talks to the upstream prayer-time API.
type Client struct {
	httpClient *http.Client
	// BaseURL is exported so tests can point it at an httptest server.
	BaseURL string
}

// NewClient creates a client with the default base URL and a 10s timeout.
func NewClient() *Client {
	return NewClientWithTimeout(DefaultBaseURL, DefaultTimeout)
}

// NewClientWithTimeout creates a client against baseURL. A zero timeout uses DefaultTimeout.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchMonth fetches every day of the given month for z.
func (c *Client) FetchMonth(ctx context.Context, z zone.Code, year int, month time.Month) (*Month, error) {
	start := time.Now()
	m, err := c.fetchMonth(ctx, z, year, month)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ObserveUpstream(outcome, time.Since(start))
	return m, err
}

// FetchDay fetches the month containing date and extracts that single day.
func (c *Client) FetchDay(ctx context.Context, z zone.Code, date time.Time) (DayTimes, error) {
	m, err := c.FetchMonth(ctx, z, date.Year(), date.Month())
	if err != nil {
		return DayTimes{}, err
	}
	return m.Day(date)
}

func (c *Client) fetchMonth(ctx context.Context, z zone.Code, year int, month time.Month) (*Month, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	params.Set("month", strconv.Itoa(int(month)))
	reqURL := fmt.Sprintf("%s/%s?%s", c.BaseURL, url.PathEscape(string(z)), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Zone: z, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	log.Debug().Str("zone", string(z)).Int("year", year).Int("month", int(month)).Msg("fetching prayer times")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Zone: z, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			Zone:       z,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))),
		}
	}

	var body MonthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &TransportError{Zone: z, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if body.Prayers == nil {
		return nil, &TransportError{Zone: z, StatusCode: resp.StatusCode, Err: errors.New("invalid response: missing prayers")}
	}
	if body.Year != 0 && body.MonthNumber != 0 && (body.Year != year || body.MonthNumber != int(month)) {
		return nil, &TransportError{
			Zone:       z,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("invalid response: got %04d-%02d, want %04d-%02d", body.Year, body.MonthNumber, year, int(month)),
		}
	}

	return &Month{
		Zone:    z,
		Year:    year,
		Month:   month,
		Entries: *body.Prayers,
	}, nil
}
