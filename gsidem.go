// Package gsidem resolves ground elevations from the Geospatial
// Information Authority of Japan (GSI) elevation tile service, or any
// compatible XYZ tile service publishing RGB-encoded elevations.
package gsidem

// A TileAddress locates a single pixel in the web-Mercator tile grid:
// integer tile indices plus the pixel offset within the 256x256 tile
// raster.
type TileAddress struct {
	TileX  int
	TileY  int
	PixelX int
	PixelY int
}

// A Sample is the result of an elevation query. OK reports whether the
// pixel encoded an elevation: it is false when no source had a tile for
// the location and when the found pixel carried the sea or missing-data
// marker, all of which resolve to an Elevation of 0. Source and Zoom
// identify the cascade entry whose tile answered, if any.
type Sample struct {
	Elevation float64
	Source    string
	Zoom      int
	OK        bool
}
