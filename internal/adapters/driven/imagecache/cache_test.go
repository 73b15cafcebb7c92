package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func imageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/avatar.png", "/a.png", "/b.png", "/c.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngBytes)
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCache_LoadCachesHits(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	cache, err := New(4, srv.Client())
	require.NoError(t, err)

	first, err := cache.Load(context.Background(), srv.URL+"/avatar.png")
	require.NoError(t, err)
	second, err := cache.Load(context.Background(), srv.URL+"/avatar.png")
	require.NoError(t, err)

	assert.Equal(t, pngBytes, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	cache, err := New(2, srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	for _, p := range []string{"/a.png", "/b.png", "/a.png", "/c.png"} {
		_, err := cache.Load(ctx, srv.URL+p)
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), hits.Load())

	_, err = cache.Load(ctx, srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())

	_, err = cache.Load(ctx, srv.URL+"/b.png")
	require.NoError(t, err)
	assert.Equal(t, int32(4), hits.Load())
}

func TestCache_ConcurrentLoadsShareRequest(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	cache, err := New(4, srv.Client())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.Load(context.Background(), srv.URL+"/avatar.png")
			assert.NoError(t, err)
			assert.Equal(t, pngBytes, data)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, hits.Load(), int32(10))
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Failures(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	cache, err := New(0, srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = cache.Load(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = cache.Load(ctx, srv.URL+"/missing.png")
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)

	_, err = cache.Load(ctx, srv.URL+"/page.html")
	assert.ErrorIs(t, err, domain.ErrDecodeFailure)

	assert.Zero(t, cache.Len())
}

func TestCache_Purge(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	cache, err := New(4, srv.Client())
	require.NoError(t, err)
	_, err = cache.Load(context.Background(), srv.URL+"/avatar.png")
	require.NoError(t, err)

	cache.Purge()

	assert.Zero(t, cache.Len())
}
