package gsidem_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/alecthomas/assert/v2"

	gsidem "github.com/twpayne/go-gsidem"
)

func TestProject(t *testing.T) {
	for _, tc := range []struct {
		name     string
		lat      float64
		lng      float64
		zoom     int
		expected gsidem.TileAddress
	}{
		{
			name: "tokyo_station_z15",
			lat:  35.681167,
			lng:  139.767052,
			zoom: 15,
			expected: gsidem.TileAddress{
				TileX:  29105,
				TileY:  12903,
				PixelX: 232,
				PixelY: 83,
			},
		},
		{
			name: "tokyo_station_z14",
			lat:  35.681167,
			lng:  139.767052,
			zoom: 14,
			expected: gsidem.TileAddress{
				TileX:  14552,
				TileY:  6451,
				PixelX: 244,
				PixelY: 169,
			},
		},
		{
			name: "mount_fuji",
			lat:  35.360556,
			lng:  138.7275,
			zoom: 15,
			expected: gsidem.TileAddress{
				TileX:  29011,
				TileY:  12939,
				PixelX: 73,
				PixelY: 46,
			},
		},
		{
			name: "null_island",
			lat:  0,
			lng:  0,
			zoom: 15,
			expected: gsidem.TileAddress{
				TileX:  16384,
				TileY:  16384,
				PixelX: 0,
				PixelY: 0,
			},
		},
		{
			name: "sydney",
			lat:  -33.856784,
			lng:  151.215297,
			zoom: 15,
			expected: gsidem.TileAddress{
				TileX:  30147,
				TileY:  19662,
				PixelX: 243,
				PixelY: 129,
			},
		},
		{
			name: "longitude_out_of_range",
			lat:  35,
			lng:  200,
			zoom: 15,
			expected: gsidem.TileAddress{
				TileX:  34588,
				TileY:  12979,
				PixelX: 113,
				PixelY: 85,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := gsidem.Project(tc.lat, tc.lng, tc.zoom)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestProject_PixelOffsetWithinTile(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		lat := -90 + 180*r.Float64()
		lng := -180 + 360*r.Float64()
		for _, zoom := range []int{0, 14, 15, 18} {
			t.Run(strconv.Itoa(i), func(t *testing.T) {
				addr, err := gsidem.Project(lat, lng, zoom)
				if err != nil {
					assert.IsError(t, err, gsidem.ErrLatitudeOutOfRange)
					return
				}
				assert.True(t, 0 <= addr.PixelX && addr.PixelX < gsidem.TileSize)
				assert.True(t, 0 <= addr.PixelY && addr.PixelY < gsidem.TileSize)
			})
		}
	}
}

func TestProject_Poles(t *testing.T) {
	for _, tc := range []struct {
		name string
		lat  float64
	}{
		{name: "north_pole", lat: 90},
		{name: "south_pole", lat: -90},
		{name: "beyond_north_pole", lat: 90.1},
		{name: "beyond_south_pole", lat: -91},
		// Within the range check but close enough to a pole that the
		// projection degenerates.
		{name: "near_north_pole", lat: 89.9999999},
		{name: "near_south_pole", lat: -89.9999999},
		{name: "nearest_north_pole", lat: 89.99999999999999},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gsidem.Project(tc.lat, 0, 15)
			assert.IsError(t, err, gsidem.ErrLatitudeOutOfRange)
		})
	}
}
