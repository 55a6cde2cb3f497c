package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// DefaultBasemapURL serves a world country-outline feature collection.
const DefaultBasemapURL = "https://raw.githubusercontent.com/holtzy/D3-graph-gallery/master/DATA/world.geojson"

const basemapMaxBytes = 32 << 20

// Basemap caches the world geometry fetched once at startup. The
// geometry arrives asynchronously; rendering proceeds without country
// outlines until it does, and permanently if the fetch fails.
type Basemap struct {
	client *http.Client
	logger *zap.Logger

	mu sync.RWMutex
	fc *geojson.FeatureCollection
}

// NewBasemap creates an empty basemap cache.
func NewBasemap(logger *zap.Logger) *Basemap {
	return &Basemap{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Fetch downloads and parses the feature collection. A failure leaves
// the basemap empty and is non-fatal to the caller.
func (b *Basemap) Fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build basemap request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Warn("basemap fetch failed, rendering without country outlines", zap.Error(err))
		return fmt.Errorf("failed to fetch basemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.logger.Warn("basemap fetch failed, rendering without country outlines",
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("basemap fetch returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, basemapMaxBytes))
	if err != nil {
		return fmt.Errorf("failed to read basemap body: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		b.logger.Warn("basemap parse failed, rendering without country outlines", zap.Error(err))
		return fmt.Errorf("failed to parse basemap geojson: %w", err)
	}

	b.mu.Lock()
	b.fc = fc
	b.mu.Unlock()

	b.logger.Info("basemap loaded", zap.Int("features", len(fc.Features)))
	return nil
}

// Features returns the cached feature collection, or nil while the
// geometry has not arrived.
func (b *Basemap) Features() *geojson.FeatureCollection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fc
}

// Loaded reports whether the geometry is available.
func (b *Basemap) Loaded() bool {
	return b.Features() != nil
}
