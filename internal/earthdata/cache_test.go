package earthdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache(5 * time.Minute)
	cache.now = func() time.Time { return current }

	t.Run("Set then Get within TTL", func(t *testing.T) {
		cache.Set("soil_10.00_20.00", 72.5)
		value, ok := cache.Get("soil_10.00_20.00")
		require.True(t, ok)
		assert.Equal(t, 72.5, value)
	})

	t.Run("Entry expires after TTL", func(t *testing.T) {
		cache.Set("climate_10.00_20.00", ClimateData{Temperature: 24, Precipitation: 80})
		current = current.Add(5*time.Minute + time.Second)

		_, ok := cache.Get("climate_10.00_20.00")
		assert.False(t, ok)
	})

	t.Run("Missing key", func(t *testing.T) {
		_, ok := cache.Get("ndvi_0.00_0.00")
		assert.False(t, ok)
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "soil_10.00_20.00", cacheKey("soil", 10.001, 20.004))
	assert.Equal(t, "soil_-15.79_-47.88", cacheKey("soil", -15.79, -47.881))
}
