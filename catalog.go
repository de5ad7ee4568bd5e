package gsidem

import (
	"strconv"
	"strings"
)

// A TileSource describes one DEM tile layer. Catalog order is the
// priority order: earlier sources are tried first.
type TileSource struct {
	Title       string
	URLTemplate string // contains {x}, {y} and {z} placeholders
	MinZoom     int
	MaxZoom     int
}

// A CascadeEntry is a single (source, zoom) fetch attempt.
type CascadeEntry struct {
	Title       string
	Zoom        int
	URLTemplate string
}

// DefaultCatalog returns the GSI DEM layers in priority order: the 5m
// grid layers first, then the 10m grid layer as the fallback.
//
// See https://maps.gsi.go.jp/development/ichiran.html.
func DefaultCatalog() []TileSource {
	return []TileSource{
		{
			Title:       "DEM5A",
			URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/dem5a_png/{z}/{x}/{y}.png",
			MinZoom:     15,
			MaxZoom:     15,
		},
		{
			Title:       "DEM5B",
			URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/dem5b_png/{z}/{x}/{y}.png",
			MinZoom:     15,
			MaxZoom:     15,
		},
		{
			Title:       "DEM5C",
			URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/dem5c_png/{z}/{x}/{y}.png",
			MinZoom:     15,
			MaxZoom:     15,
		},
		{
			Title:       "DEM10B",
			URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/dem_png/{z}/{x}/{y}.png",
			MinZoom:     14,
			MaxZoom:     14,
		},
	}
}

// BuildCascade expands catalog into the flat, ordered list of fetch
// attempts: for each source in catalog order, one entry per zoom level
// from MaxZoom down to MinZoom inclusive. Sources declared with
// inverted zoom bounds are normalized by swapping, not rejected. The
// returned order is exactly the retry order used by the fetch loop.
func BuildCascade(catalog []TileSource) []CascadeEntry {
	var cascade []CascadeEntry
	for _, source := range catalog {
		minZoom, maxZoom := source.MinZoom, source.MaxZoom
		if maxZoom < minZoom {
			minZoom, maxZoom = maxZoom, minZoom
		}
		for zoom := maxZoom; zoom >= minZoom; zoom-- {
			cascade = append(cascade, CascadeEntry{
				Title:       source.Title,
				Zoom:        zoom,
				URLTemplate: source.URLTemplate,
			})
		}
	}
	return cascade
}

// URL returns the tile URL for e at addr. Only the tile indices and e's
// own zoom are substituted; the pixel offset in addr does not appear in
// the URL.
func (e CascadeEntry) URL(addr TileAddress) string {
	return strings.NewReplacer(
		"{x}", strconv.Itoa(addr.TileX),
		"{y}", strconv.Itoa(addr.TileY),
		"{z}", strconv.Itoa(e.Zoom),
	).Replace(e.URLTemplate)
}
