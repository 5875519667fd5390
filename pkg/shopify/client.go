// Package shopify provides the admin REST API client with rate-limit
// handling, proactive throttling, and cursor pagination support.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/saachistyle/shop-reports/pkg/cache"
)

// Client fetches order pages from the admin API.
type Client struct {
	httpClient *http.Client
	config     Config
	throttle   *rate.Limiter
	cache      *cache.Manager
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// ShopName is the myshopify.com subdomain (REQUIRED).
	ShopName string

	// AccessToken is sent as X-Shopify-Access-Token on every request (REQUIRED).
	AccessToken string

	// APIVersion selects the admin API version, e.g. "2025-01".
	APIVersion string

	// MaxRetries is the total number of attempts for a rate-limited request.
	MaxRetries int

	// RetryDelay is the backoff used when a 429 carries no Retry-After hint.
	RetryDelay time.Duration

	// ThrottleInterval paces requests proactively, independent of 429 backoff.
	ThrottleInterval time.Duration

	// Cache enables the Redis page-response cache when non-nil.
	Cache *cache.Manager

	// BaseURL overrides the shop domain (for testing against a local server).
	BaseURL string
}

// DefaultConfig returns a safe default configuration for a shop.
func DefaultConfig(shopName, accessToken string) Config {
	return Config{
		ShopName:         shopName,
		AccessToken:      accessToken,
		APIVersion:       "2025-01",
		MaxRetries:       5,
		RetryDelay:       2 * time.Second,
		ThrottleInterval: 300 * time.Millisecond,
	}
}

// New creates a new admin API client.
func New(cfg Config) (*Client, error) {
	if cfg.ShopName == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("shop name is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2025-01"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.ThrottleInterval <= 0 {
		cfg.ThrottleInterval = 300 * time.Millisecond
	}

	logger := log.With().Str("component", "shopify-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config:   cfg,
		throttle: rate.NewLimiter(rate.Every(cfg.ThrottleInterval), 1),
		cache:    cfg.Cache,
		logger:   logger,
	}, nil
}

// OrdersURL returns the orders endpoint for the configured shop.
func (c *Client) OrdersURL() string {
	base := c.config.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.myshopify.com", c.config.ShopName)
	}
	return fmt.Sprintf("%s/admin/api/%s/orders.json", base, c.config.APIVersion)
}

// FetchOrders fetches a single order page. params applies to the seed
// request only; cursor URLs from the Link header are self-contained.
//
// Rate limiting (429) is retried up to MaxRetries total attempts using the
// server's Retry-After hint. Any other failure is returned after a single
// attempt; callers drop the page and continue.
func (c *Client) FetchOrders(ctx context.Context, pageURL string, params url.Values) ([]Order, string, error) {
	start := time.Now()
	defer func() {
		shopRequestDuration.Observe(time.Since(start).Seconds())
	}()

	if c.cache != nil {
		if orders, next, ok := c.cachedPage(ctx, pageURL, params); ok {
			return orders, next, nil
		}
	}

	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, "", fmt.Errorf("throttle wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, "", fmt.Errorf("create request: %w", err)
		}
		if params != nil {
			req.URL.RawQuery = params.Encode()
		}
		req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error().Err(err).Str("url", pageURL).Msg("Orders request failed")
			shopPagesDroppedTotal.WithLabelValues("network").Inc()
			return nil, "", fmt.Errorf("orders request: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp.Header, c.config.RetryDelay)
			resp.Body.Close()
			shopRateLimitedTotal.Inc()
			shopRequestsTotal.WithLabelValues("429").Inc()

			c.logger.Warn().
				Str("url", pageURL).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("Rate limited, backing off")

			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			shopRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
			shopPagesDroppedTotal.WithLabelValues("status").Inc()

			c.logger.Error().
				Str("url", pageURL).
				Int("status", resp.StatusCode).
				Str("body", string(body)).
				Msg("Orders request returned non-success status")

			return nil, "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			shopPagesDroppedTotal.WithLabelValues("network").Inc()
			return nil, "", fmt.Errorf("read orders page: %w", err)
		}

		shopRequestsTotal.WithLabelValues("200").Inc()
		next := nextPageURL(resp.Header.Get("Link"))

		var page ordersResponse
		if err := json.Unmarshal(body, &page); err != nil {
			shopPagesDroppedTotal.WithLabelValues("decode").Inc()
			return nil, "", fmt.Errorf("decode orders page: %w", err)
		}

		if c.cache != nil {
			c.storePage(ctx, pageURL, params, body, next)
		}

		c.logger.Debug().
			Str("url", pageURL).
			Int("orders", len(page.Orders)).
			Bool("has_next", next != "").
			Msg("Fetched orders page")

		return page.Orders, next, nil
	}

	shopRetryExhaustedTotal.Inc()
	shopPagesDroppedTotal.WithLabelValues("retry_exhausted").Inc()
	c.logger.Warn().
		Str("url", pageURL).
		Int("max_attempts", c.config.MaxRetries).
		Msg("Rate-limit retries exhausted, dropping page")

	return nil, "", fmt.Errorf("%w after %d attempts", ErrRetryExhausted, c.config.MaxRetries)
}

// cachedPage returns a previously fetched page when the cache holds a live
// entry for this URL.
func (c *Client) cachedPage(ctx context.Context, pageURL string, params url.Values) ([]Order, string, bool) {
	entry, err := c.cache.Get(ctx, cache.Key(pageURL, params))
	if err != nil {
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("url", pageURL).Msg("Cache get error")
		}
		return nil, "", false
	}

	var page ordersResponse
	if err := json.Unmarshal(entry.Body, &page); err != nil {
		c.logger.Warn().Err(err).Str("url", pageURL).Msg("Invalid cached page, refetching")
		return nil, "", false
	}

	c.logger.Debug().
		Str("url", pageURL).
		Int("orders", len(page.Orders)).
		Msg("Orders page served from cache")

	return page.Orders, entry.NextURL, true
}

// storePage caches a fetched page body together with its next cursor.
func (c *Client) storePage(ctx context.Context, pageURL string, params url.Values, body []byte, next string) {
	entry := &cache.Entry{
		Body:     body,
		NextURL:  next,
		CachedAt: time.Now(),
	}
	if err := c.cache.Set(ctx, cache.Key(pageURL, params), entry); err != nil {
		c.logger.Warn().Err(err).Str("url", pageURL).Msg("Failed to cache page")
	}
}

// retryAfter reads the server's backoff hint, falling back to def when the
// header is absent or unparseable. The admin API sends fractional seconds.
func retryAfter(headers http.Header, def time.Duration) time.Duration {
	value := headers.Get("Retry-After")
	if value == "" {
		return def
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return def
	}
	return time.Duration(seconds * float64(time.Second))
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
