// internal/adapters/catalog/client.go
package catalog

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"pytech_site/internal/adapters/observability"
	"pytech_site/internal/domain"
)

// Client reads the catalog repository over HTTP. A 404 maps to
// domain.ErrNotFound; anything else that is not a 2xx, and every transport
// failure, is wrapped with domain.ErrSourceUnavailable.
type Client struct {
	base    string
	hc      *http.Client
	key     string
	rl      *rate.Limiter
	retries int
}

func New(base, key string, rps int) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
		key:     key,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		retries: 3,
	}, nil
}

// ---- Public API ----

func (c *Client) GetService(ctx context.Context, slug string) (domain.Service, error) {
	var out domain.Service
	err := c.get(ctx, "service", "/services/"+url.PathEscape(slug), &out)
	return out, err
}

func (c *Client) GetCity(ctx context.Context, slug string) (domain.City, error) {
	var out domain.City
	err := c.get(ctx, "city", "/cities/"+url.PathEscape(slug), &out)
	return out, err
}

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	err := c.get(ctx, "services", "/services", &out)
	return out, err
}

func (c *Client) ListCities(ctx context.Context) ([]domain.City, error) {
	var out []domain.City
	err := c.get(ctx, "cities", "/cities", &out)
	return out, err
}

// ---- Internals ----

var errRetryable = errors.New("retryable")

// get performs a GET with client-side rate limiting, retries on 429/5xx and
// network errors (honoring Retry-After), and decodes JSON into out.
func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	start := time.Now()
	status, err := c.do(ctx, c.base+path, out)
	observability.ObserveExternal("catalog", endpoint, status, time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, u string, out any) (int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: rate limiter: %v", domain.ErrSourceUnavailable, err)
	}

	var (
		lastErr    error
		lastStatus int
	)
	for i := 0; i <= c.retries; i++ {
		status, wait, err := c.once(ctx, u, out)
		lastStatus = status
		if err == nil || !errors.Is(err, errRetryable) {
			return status, err
		}
		lastErr = err
		if wait == 0 {
			wait = backoff(i)
		}
		if i == c.retries || !sleepCtx(ctx, wait) {
			break
		}
	}
	if ctx.Err() != nil {
		return lastStatus, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, ctx.Err())
	}
	return lastStatus, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, lastErr)
}

// once runs a single attempt. A retryable failure is returned wrapped in
// errRetryable together with any server-provided wait.
func (c *Client) once(ctx context.Context, u string, out any) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pytech-site/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, 0, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, ctx.Err())
		}
		return 0, 0, fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, 0, fmt.Errorf("%w: decode: %v", domain.ErrSourceUnavailable, err)
		}
		return resp.StatusCode, 0, nil

	case http.StatusNotFound:
		return resp.StatusCode, 0, domain.ErrNotFound

	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, retryAfter(resp), fmt.Errorf("%w: remote %d", errRetryable, resp.StatusCode)

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, 0, fmt.Errorf("%w: bad status %d: %s",
			domain.ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff: 100ms, 200ms, 400ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
