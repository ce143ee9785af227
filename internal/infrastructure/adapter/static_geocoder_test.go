package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGeocoder_Geocode(t *testing.T) {
	geocoder := NewStaticGeocoder()
	ctx := context.Background()

	t.Run("resolves a known city", func(t *testing.T) {
		coords, err := geocoder.Geocode(ctx, "Plot 7, Jodhpur, Rajasthan")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InDelta(t, 26.2389, coords.Lat, 0.0001)
		assert.InDelta(t, 73.0243, coords.Lng, 0.0001)
	})

	t.Run("city match wins over its state", func(t *testing.T) {
		coords, err := geocoder.Geocode(ctx, "Pune, Maharashtra")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InDelta(t, 18.5204, coords.Lat, 0.0001)
	})

	t.Run("falls back to a state centroid", func(t *testing.T) {
		coords, err := geocoder.Geocode(ctx, "rural Gujarat")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InDelta(t, 22.6708, coords.Lat, 0.0001)
	})

	t.Run("unknown location returns nil without error", func(t *testing.T) {
		coords, err := geocoder.Geocode(ctx, "plot 14, industrial area")

		require.NoError(t, err)
		assert.Nil(t, coords)
	})
}
