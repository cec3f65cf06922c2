package earthdata

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProvider(seed int64, ttl time.Duration) *Provider {
	p := NewProvider(zap.NewNop(), NewCache(ttl), rand.New(rand.NewSource(seed)))
	p.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return p
}

func TestSoilMoisture(t *testing.T) {
	t.Run("Tropical latitudes are wetter than polar ones", func(t *testing.T) {
		for seed := int64(0); seed < 30; seed++ {
			tropical := newTestProvider(seed, time.Minute).SoilMoisture(10, 20)
			polar := newTestProvider(seed, time.Minute).SoilMoisture(60, 20)

			// тропики: 50+20±10 => [60,80]; высокие широты: 50-10±10 => [30,50]
			assert.GreaterOrEqual(t, tropical, 60.0)
			assert.LessOrEqual(t, tropical, 80.0)
			assert.GreaterOrEqual(t, polar, 30.0)
			assert.LessOrEqual(t, polar, 50.0)
		}
	})

	t.Run("Repeated reads hit the cache", func(t *testing.T) {
		p := newTestProvider(7, time.Minute)
		first := p.SoilMoisture(10, 20)
		second := p.SoilMoisture(10, 20)
		assert.Equal(t, first, second)

		// Координаты, совпадающие после округления до сотых, делят запись
		third := p.SoilMoisture(10.001, 20.004)
		assert.Equal(t, first, third)
	})
}

func TestClimate(t *testing.T) {
	p := newTestProvider(3, time.Minute)

	t.Run("Equator is warmer than high latitudes", func(t *testing.T) {
		equator := p.Climate(0, 0)
		north := p.Climate(55, 0)

		// экватор: 25±5; широта 55: 25-27.5±5
		assert.GreaterOrEqual(t, equator.Temperature, 20)
		assert.LessOrEqual(t, equator.Temperature, 30)
		assert.Less(t, north.Temperature, equator.Temperature)
	})

	t.Run("Precipitation follows the latitude band", func(t *testing.T) {
		tropical := p.Climate(-10, 40)
		polar := p.Climate(-50, 40)

		assert.GreaterOrEqual(t, tropical.Precipitation, 60)
		assert.LessOrEqual(t, tropical.Precipitation, 100)
		assert.GreaterOrEqual(t, polar.Precipitation, 20)
		assert.LessOrEqual(t, polar.Precipitation, 60)
	})
}

func TestVegetationIndex(t *testing.T) {
	p := newTestProvider(9, time.Minute)

	ndvi := p.VegetationIndex(5, 5)
	assert.GreaterOrEqual(t, ndvi, 0.0)
	assert.LessOrEqual(t, ndvi, 1.0)

	// NDVI производен от влажности: soil/100*0.8 + [0,0.2]
	soil := p.SoilMoisture(5, 5)
	assert.GreaterOrEqual(t, ndvi, soil/100*0.8)
	assert.LessOrEqual(t, ndvi, soil/100*0.8+0.2)
}

func TestSnapshot(t *testing.T) {
	p := newTestProvider(11, time.Minute)
	snapshot := p.Snapshot(-15.79, -47.88)

	assert.Equal(t, Source, snapshot.Source)
	assert.GreaterOrEqual(t, snapshot.SoilMoisture, 10.0)
	assert.LessOrEqual(t, snapshot.SoilMoisture, 90.0)
	assert.GreaterOrEqual(t, snapshot.VegetationIndex, 0.0)
	assert.LessOrEqual(t, snapshot.VegetationIndex, 1.0)

	// Поля снимка согласованы с покомпонентными методами (кэш)
	climate := p.Climate(-15.79, -47.88)
	assert.Equal(t, climate.Temperature, snapshot.Temperature)
	assert.Equal(t, climate.Precipitation, snapshot.Precipitation)
}

func TestAnnualClimate(t *testing.T) {
	p := newTestProvider(1, time.Minute)

	t.Run("Deterministic for the same latitude", func(t *testing.T) {
		assert.Equal(t, p.AnnualClimate(12.5), p.AnnualClimate(12.5))
	})

	t.Run("Tropics are hot and wet, high latitudes arid", func(t *testing.T) {
		tropics := p.AnnualClimate(0)
		assert.Equal(t, 25.0, tropics.AvgTemperature)
		assert.Equal(t, 960.0, tropics.AvgPrecipitation)

		north := p.AnnualClimate(60)
		assert.Equal(t, -5.0, north.AvgTemperature)
		assert.Equal(t, 480.0, north.AvgPrecipitation)
	})
}

func TestSatelliteImages(t *testing.T) {
	p := newTestProvider(1, time.Minute)

	t.Run("Layer dates respect publication lag", func(t *testing.T) {
		images := p.SatelliteImages(-15.79, -47.88, "")

		assert.Contains(t, images.TrueColor, "LAYERS=VIIRS_SNPP_CorrectedReflectance_TrueColor")
		assert.Contains(t, images.TrueColor, "TIME=2025-05-31")
		assert.Contains(t, images.NDVI, "LAYERS=MODIS_Terra_NDVI_8Day")
		assert.Contains(t, images.NDVI, "TIME=2025-05-24")
		assert.Contains(t, images.Temperature, "LAYERS=MODIS_Terra_Land_Surface_Temp_Day")
		assert.Contains(t, images.Temperature, "TIME=2025-05-24")

		for _, u := range []string{images.TrueColor, images.NDVI, images.Temperature} {
			assert.Contains(t, u, "https://gibs.earthdata.nasa.gov/wms/epsg4326/best/wms.cgi?")
			assert.Contains(t, u, "WIDTH=512")
			assert.Contains(t, u, "CRS=EPSG%3A4326")
		}
	})

	t.Run("Explicit date overrides the true color layer only", func(t *testing.T) {
		images := p.SatelliteImages(10, 20, "2025-04-01")
		assert.Contains(t, images.TrueColor, "TIME=2025-04-01")
		assert.Contains(t, images.NDVI, "TIME=2025-05-24")
	})

	t.Run("Bounding box is centered on the point", func(t *testing.T) {
		images := p.SatelliteImages(10, 20, "2025-04-01")
		require.Contains(t, images.TrueColor, "BBOX=18%2C8%2C22%2C12")
	})
}
