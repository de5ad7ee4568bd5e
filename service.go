package gsidem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tileFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gsidem_tile_fetches_total",
		Help: "The total number of tile fetch attempts",
	})
	tileFetchMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gsidem_tile_fetch_misses_total",
		Help: "The total number of tile fetch attempts that found no tile",
	})
	cascadeExhaustions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gsidem_cascade_exhaustions_total",
		Help: "The total number of queries for which no source had a tile",
	})
	samplesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gsidem_samples_decoded_total",
		Help: "The total number of successfully decoded elevation samples",
	})
)

// DefaultQueryZoom is the zoom level at which query coordinates are
// projected to a tile address.
const DefaultQueryZoom = 15

const defaultTimeout = 30 * time.Second

// maxTileBytes bounds the tile response body read. A 256x256 PNG is a
// few hundred KB at most.
const maxTileBytes = 4 << 20

// A StatusError is an unexpected, non-404 HTTP status from a tile
// source. It is fatal: the cascade is not continued past it.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
}

// A TileElevationService resolves elevations by querying an ordered
// catalog of XYZ elevation tile sources, falling back through them on
// missing tiles. It is safe for concurrent use.
type TileElevationService struct {
	client    *http.Client
	logger    *slog.Logger
	userAgent string
	queryZoom int
	cascade   []CascadeEntry
}

// A TileElevationServiceOption sets an option on a TileElevationService.
type TileElevationServiceOption func(*TileElevationService)

// NewTileElevationService returns a new TileElevationService. Without
// options it queries the default GSI catalog with a 30s per-request
// timeout.
func NewTileElevationService(options ...TileElevationServiceOption) *TileElevationService {
	s := &TileElevationService{
		client:    &http.Client{Timeout: defaultTimeout},
		logger:    slog.Default(),
		queryZoom: DefaultQueryZoom,
		cascade:   BuildCascade(DefaultCatalog()),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func WithCatalog(catalog []TileSource) TileElevationServiceOption {
	return func(s *TileElevationService) {
		s.cascade = BuildCascade(catalog)
	}
}

func WithHTTPClient(client *http.Client) TileElevationServiceOption {
	return func(s *TileElevationService) {
		s.client = client
	}
}

func WithLogger(logger *slog.Logger) TileElevationServiceOption {
	return func(s *TileElevationService) {
		s.logger = logger
	}
}

func WithQueryZoom(queryZoom int) TileElevationServiceOption {
	return func(s *TileElevationService) {
		s.queryZoom = queryZoom
	}
}

func WithUserAgent(userAgent string) TileElevationServiceOption {
	return func(s *TileElevationService) {
		s.userAgent = userAgent
	}
}

// Sample resolves the elevation at (lat, lng). A Sample with OK false
// and no error means no source had data for the location.
func (s *TileElevationService) Sample(ctx context.Context, lat, lng float64) (Sample, error) {
	addr, err := Project(lat, lng, s.queryZoom)
	if err != nil {
		return Sample{}, err
	}
	s.logger.DebugContext(ctx, "projected",
		"lat", lat,
		"lng", lng,
		"zoom", s.queryZoom,
		"tileX", addr.TileX,
		"tileY", addr.TileY,
		"pixelX", addr.PixelX,
		"pixelY", addr.PixelY,
	)
	return s.resolve(ctx, addr)
}

// Elevation is a convenience wrapper around [Sample] returning only the
// elevation in meters, with 0 standing for both sea level and no data.
func (s *TileElevationService) Elevation(ctx context.Context, lat, lng float64) (float64, error) {
	sample, err := s.Sample(ctx, lat, lng)
	if err != nil {
		return 0, err
	}
	return sample.Elevation, nil
}

// resolve walks the cascade in order until one entry yields a tile. A
// missing tile moves on to the next entry; any other failure is fatal.
// The first tile found terminates the walk, even if its pixel carries
// the sea or missing-data marker. The pixel offset in addr is used
// unchanged for every entry, including entries at other zoom levels
// than the query zoom.
func (s *TileElevationService) resolve(ctx context.Context, addr TileAddress) (Sample, error) {
	for _, entry := range s.cascade {
		url := entry.URL(addr)
		s.logger.DebugContext(ctx, "fetching tile",
			"source", entry.Title,
			"zoom", entry.Zoom,
			"url", url,
		)
		data, err := s.fetchTile(ctx, url)
		switch {
		case err != nil:
			return Sample{}, err
		case data == nil:
			tileFetchMisses.Inc()
			continue
		}
		elevation, ok, err := decodeTilePixel(bytes.NewReader(data), addr)
		if err != nil {
			return Sample{}, fmt.Errorf("%s: %w", url, err)
		}
		samplesDecoded.Inc()
		return Sample{
			Elevation: elevation,
			Source:    entry.Title,
			Zoom:      entry.Zoom,
			OK:        ok,
		}, nil
	}
	cascadeExhaustions.Inc()
	return Sample{}, nil
}

// fetchTile GETs url and returns the tile bytes. A 404 returns
// (nil, nil): the tile does not exist at this source and zoom and the
// next cascade entry should be tried. Any other non-200 status is a
// StatusError.
func (s *TileElevationService) fetchTile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	tileFetches.Inc()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxTileBytes+1))
		if err != nil {
			return nil, err
		}
		if len(data) > maxTileBytes {
			return nil, fmt.Errorf("%s: tile exceeds %d bytes", url, maxTileBytes)
		}
		return data, nil
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
}
