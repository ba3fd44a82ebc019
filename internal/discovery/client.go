package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/framehost/officebridge/internal/infrastructure/logging"
	"github.com/framehost/officebridge/internal/infrastructure/resilience"
)

// DiscoveryPath is the well-known discovery endpoint path.
const DiscoveryPath = "/hosting/discovery"

// defaultTTL follows the discovery guidance of refreshing roughly daily;
// half a day keeps a stale editor URL bounded without hammering the endpoint.
const defaultTTL = 12 * time.Hour

// Client fetches and caches the discovery document.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *logging.Logger
	ttl     time.Duration

	mu     sync.RWMutex
	cached *document
	expiry time.Time
}

// NewClient creates a discovery client for the given Office Online base URL.
func NewClient(baseURL string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}

	// Retryable transport under resty, same stack as outbound HTTP
	// elsewhere in the host.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "officebridge/1.0").
		SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New("discovery", resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		breaker: breaker,
		logger:  logger,
		ttl:     defaultTTL,
	}
}

// WithTTL overrides the discovery cache TTL.
func (c *Client) WithTTL(ttl time.Duration) *Client {
	c.ttl = ttl
	return c
}

// Resolve returns the editor URL for an app type and file extension,
// fetching the discovery document if the cached copy expired.
func (c *Client) Resolve(ctx context.Context, appType, ext string) (string, error) {
	doc, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	return doc.actionURL(appType, ext)
}

func (c *Client) load(ctx context.Context) (*document, error) {
	c.mu.RLock()
	if c.cached != nil && time.Now().Before(c.expiry) {
		doc := c.cached
		c.mu.RUnlock()
		return doc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.cached != nil && time.Now().Before(c.expiry) {
		return c.cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		// Serve the stale copy when the endpoint is down; the editor URL
		// changes rarely enough for that to be safe.
		if c.cached != nil {
			c.logger.Warn("discovery refresh failed, serving stale document", zap.Error(err))
			return c.cached, nil
		}
		return nil, err
	}

	doc := result.(*document)
	c.cached = doc
	c.expiry = time.Now().Add(c.ttl)
	c.logger.Info("discovery document refreshed", zap.Time("expiry", c.expiry))
	return doc, nil
}

func (c *Client) fetch(ctx context.Context) (*document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(DiscoveryPath)
	if err != nil {
		return nil, fmt.Errorf("fetch discovery: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch discovery: status %d", resp.StatusCode())
	}
	return parseDiscovery(resp.Body())
}
