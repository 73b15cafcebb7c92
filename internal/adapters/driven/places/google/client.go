package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PlaceSearch = (*Client)(nil)

// DefaultBaseURL is the Places API root.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

const (
	textSearchPath  = "/textsearch/json"
	maxResponseSize = 4 << 20
)

var placesLog = logger.Component("places")

// Config configures the text search client.
type Config struct {
	APIKey            string
	BaseURL           string
	Query             string
	RadiusMeters      int
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client queries Google Places text search.
type Client struct {
	apiKey     string
	baseURL    string
	query      string
	radius     int
	httpClient *http.Client
	limiter    *RateLimiter
}

// NewClient creates a Places client. An API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: google places api key is required", domain.ErrInvalidInput)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Query == "" {
		cfg.Query = domain.DefaultSearchQuery
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		query:      cfg.Query,
		radius:     cfg.RadiusMeters,
		httpClient: cfg.HTTPClient,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// SearchNearby runs the configured text query biased to point.
func (c *Client) SearchNearby(ctx context.Context, point domain.Coordinate) ([]domain.Court, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for rate limit: %v", domain.ErrNetworkFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(point), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	placesLog.Debug("text search %q near %s", c.query, point)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: places request: %v", domain.ErrNetworkFailure, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return nil, fmt.Errorf("%w: places rate limited", domain.ErrNetworkFailure)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: places returned HTTP %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading places response: %v", domain.ErrNetworkFailure, err)
	}

	var result textSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if errors.Is(err, domain.ErrDecodeFailure) {
			return nil, fmt.Errorf("places response: %w", err)
		}
		return nil, fmt.Errorf("%w: places response: %v", domain.ErrDecodeFailure, err)
	}

	switch result.Status {
	case statusOK:
		placesLog.Debug("text search returned %d courts", len(result.Results))
		return result.Results, nil
	case statusZeroResults:
		return []domain.Court{}, nil
	case statusOverQueryLimit:
		c.limiter.Backoff(0)
		return nil, fmt.Errorf("%w: places quota exceeded", domain.ErrNetworkFailure)
	default:
		return nil, fmt.Errorf("%w: places status %s %s", domain.ErrNetworkFailure, result.Status, result.ErrorMessage)
	}
}

func (c *Client) searchURL(point domain.Coordinate) string {
	params := url.Values{}
	params.Set("query", c.query)
	params.Set("location", point.String())
	if c.radius > 0 {
		params.Set("radius", strconv.Itoa(c.radius))
	}
	params.Set("key", c.apiKey)
	return c.baseURL + textSearchPath + "?" + params.Encode()
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// redact keeps the API key out of logged transport errors, which embed the URL.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
