package service

import (
	"context"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/geo"
	"github.com/lennoxmeldrum/mongol-atlas/internal/history"
	"github.com/lennoxmeldrum/mongol-atlas/internal/mapview"
)

// AtlasService exposes the static tables and the map view. It owns the
// basemap cache, loading it in the background so first paint never
// waits on the geometry.
type AtlasService struct {
	basemap *geo.Basemap
	logger  *zap.Logger
	wg      conc.WaitGroup
}

// NewAtlasService creates a new atlas service
func NewAtlasService(basemap *geo.Basemap, logger *zap.Logger) *AtlasService {
	return &AtlasService{basemap: basemap, logger: logger}
}

// LoadBasemap fetches the world geometry asynchronously. A failed
// fetch leaves the map rendering markers without country outlines.
func (s *AtlasService) LoadBasemap(ctx context.Context, url string) {
	s.wg.Go(func() {
		if err := s.basemap.Fetch(ctx, url); err != nil {
			s.logger.Warn("continuing without basemap", zap.Error(err))
		}
	})
}

// Wait blocks until background loading has settled. Used on shutdown.
func (s *AtlasService) Wait() {
	s.wg.Wait()
}

// Events returns the historical events ordered by year.
func (s *AtlasService) Events(ctx context.Context) []domain.HistoricalEvent {
	return history.Events()
}

// Cities returns the tracked cities.
func (s *AtlasService) Cities(ctx context.Context) []domain.City {
	return history.Cities()
}

// Personas returns the conversational personas.
func (s *AtlasService) Personas(ctx context.Context) []domain.Persona {
	return history.Personas()
}

// MapView computes the render model for a year and viewport.
func (s *AtlasService) MapView(ctx context.Context, year int, width, height float64) mapview.View {
	return mapview.Build(year, width, height, s.basemap.Loaded())
}

// MapSVG renders the map as an SVG document.
func (s *AtlasService) MapSVG(ctx context.Context, year int, width, height float64) []byte {
	view := mapview.Build(year, width, height, s.basemap.Loaded())
	return mapview.RenderSVG(view, s.basemap.Features())
}
