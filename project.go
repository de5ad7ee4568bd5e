package gsidem

import (
	"errors"
	"math"
)

// TileSize is the edge length in pixels of a web-Mercator tile.
const TileSize = 256

// ErrLatitudeOutOfRange is returned by Project for latitudes at or
// beyond the poles, where the web-Mercator projection is undefined.
var ErrLatitudeOutOfRange = errors.New("latitude out of range")

// Project returns the tile address covering (lat, lng) at zoom, using
// the spherical web-Mercator projection with 256-pixel tiles. lat is
// validated against (-90, 90); lng is not validated and wraps through
// the projection, so out-of-range longitudes produce tile indices
// outside the service's tile grid.
func Project(lat, lng float64, zoom int) (TileAddress, error) {
	if lat <= -90 || 90 <= lat {
		return TileAddress{}, ErrLatitudeOutOfRange
	}

	r := 128 / math.Pi
	scale := math.Exp2(float64(zoom))

	lngRad := lng * math.Pi / 180
	pixelX := r * (lngRad + math.Pi) * scale
	tileX := int(math.Floor(pixelX / TileSize))

	latRad := lat * math.Pi / 180
	worldY := -r/2*math.Log((1+math.Sin(latRad))/(1-math.Sin(latRad))) + 128
	// Close enough to a pole, sin rounds to exactly ±1 and the log
	// argument degenerates even though lat passed the range check.
	if math.IsInf(worldY, 0) {
		return TileAddress{}, ErrLatitudeOutOfRange
	}
	pixelY := worldY * scale
	tileY := int(math.Floor(pixelY / TileSize))

	return TileAddress{
		TileX:  tileX,
		TileY:  tileY,
		PixelX: int(math.Floor(pixelX - float64(tileX)*TileSize)),
		PixelY: int(math.Floor(pixelY - float64(tileY)*TileSize)),
	}, nil
}
