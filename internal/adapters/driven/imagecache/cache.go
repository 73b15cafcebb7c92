// Package imagecache implements driven.ImageCache with an LRU of fetched
// image bytes. Concurrent loads of one URL share a single request.
package imagecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ImageCache = (*Cache)(nil)

// DefaultMaxEntries bounds the cache when no size is configured.
const DefaultMaxEntries = 256

const maxImageBytes = 8 << 20

// Cache keeps recently loaded images in memory.
type Cache struct {
	entries *lru.Cache[string, []byte]
	client  *http.Client
	loads   singleflight.Group
}

// New creates a cache holding up to maxEntries images.
// A nil client gets a 20 second timeout.
func New(maxEntries int, client *http.Client) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	entries, err := lru.New[string, []byte](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("creating image cache: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Cache{entries: entries, client: client}, nil
}

// Load returns the image at url, fetching it on a miss.
func (c *Cache) Load(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty image url", domain.ErrInvalidInput)
	}
	if data, ok := c.entries.Get(url); ok {
		return data, nil
	}

	v, err, _ := c.loads.Do(url, func() (any, error) {
		data, err := c.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		c.entries.Add(url, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Len reports how many images are cached.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached image.
func (c *Cache) Purge() {
	c.entries.Purge()
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: image url %q: %v", domain.ErrInvalidInput, url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: loading image: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: image returned HTTP %d", domain.ErrNetworkFailure, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: unexpected content type %q", domain.ErrDecodeFailure, ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading image: %v", domain.ErrNetworkFailure, err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: image larger than %d bytes", domain.ErrDecodeFailure, maxImageBytes)
	}
	return data, nil
}
