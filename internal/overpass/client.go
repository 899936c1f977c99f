// Package overpass downloads OSM XML extracts from an Overpass API endpoint
package overpass

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wegman-software/osmclean/internal/logger"
)

// DefaultEndpoint is the public Overpass interpreter
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// RichmondBound is the default download area around Richmond, VA
var RichmondBound = orb.Bound{
	Min: orb.Point{-77.5999, 37.3729},
	Max: orb.Point{-77.2689, 37.7039},
}

// Query builds the node query for a bound in Overpass (south,west,north,east) order
func Query(b orb.Bound) string {
	return fmt.Sprintf("[out:xml];node(%s,%s,%s,%s);out meta;",
		coord(b.Min.Lat()), coord(b.Min.Lon()), coord(b.Max.Lat()), coord(b.Max.Lon()))
}

func coord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.7f", v), "0"), ".")
}

// Client talks to an Overpass endpoint
type Client struct {
	endpoint   string
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the interpreter URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithRateLimit sets the sustained request rate and burst
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithRetries sets the retry count and the delay between attempts
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		c.retryDelay = delay
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a client with one request per second and three retries
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		maxRetries: 3,
		retryDelay: 5 * time.Second,
		userAgent:  "osmclean/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download runs the node query for b and writes the XML response to path.
// The file is written to a temporary name and renamed into place.
func (c *Client) Download(ctx context.Context, b orb.Bound, path string) (int64, error) {
	log := logger.Get()
	query := Query(b)

	log.Info("Querying Overpass",
		zap.String("endpoint", c.endpoint),
		zap.String("query", query))

	resp, err := c.fetchWithRetry(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("overpass query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmpFile := path + ".tmp"
	out, err := os.Create(tmpFile)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		os.Remove(tmpFile)
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return 0, fmt.Errorf("failed to rename output file: %w", err)
	}

	log.Info("Downloaded extract", zap.String("path", path), zap.Int64("bytes", n))
	return n, nil
}

// fetchWithRetry posts the query, retrying on transport and server errors
func (c *Client) fetchWithRetry(ctx context.Context, query string) (*http.Response, error) {
	log := logger.Get()
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Warn("Retrying Overpass request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		form := url.Values{"data": {query}}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		// Retry on server errors and rate limiting
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
