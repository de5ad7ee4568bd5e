package gsidem

import (
	"fmt"
	"image"
	"image/color"
	"io"

	_ "image/png"
)

// Elevation tiles pack a 24-bit two's-complement centimeter count
// big-endian into the R, G, and B channels. (128, 0, 0) marks sea, and
// the most negative representable value marks missing data.
const (
	seaR, seaG, seaB = 128, 0, 0
	noDataValue      = -1 << 23
)

// DecodeElevation decodes a single pixel's channels into an elevation
// in meters. The second return value reports whether the pixel encoded
// an elevation: it is false for the sea marker and for the missing-data
// value, both of which decode to 0.
func DecodeElevation(r, g, b uint8) (float64, bool) {
	if r == seaR && g == seaG && b == seaB {
		return 0, false
	}
	d := int(r)<<16 | int(g)<<8 | int(b)
	if d >= 1<<23 {
		d -= 1 << 24
	}
	if d == noDataValue {
		return 0, false
	}
	return float64(d) * 0.01, true
}

// decodeTilePixel decodes the raster image in body and reads the pixel
// at addr's offset. Alpha, if present, is ignored.
func decodeTilePixel(body io.Reader, addr TileAddress) (float64, bool, error) {
	img, _, err := image.Decode(body)
	if err != nil {
		return 0, false, fmt.Errorf("decode tile: %w", err)
	}
	bounds := img.Bounds()
	p := image.Point{
		X: bounds.Min.X + addr.PixelX,
		Y: bounds.Min.Y + addr.PixelY,
	}
	if !p.In(bounds) {
		return 0, false, fmt.Errorf("pixel (%d, %d) outside tile bounds %v", addr.PixelX, addr.PixelY, bounds)
	}
	c := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
	elevation, ok := DecodeElevation(c.R, c.G, c.B)
	return elevation, ok, nil
}
