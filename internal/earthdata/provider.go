package earthdata

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"terrafarm-server/shared/models"
)

// Source - подпись источника данных в каждом снимке.
const Source = "NASA GIBS / Simulated Data"

const (
	tropicLatitude = 30.0

	soilBase         = 50.0
	soilTropicBonus  = 20.0
	soilPolarPenalty = -10.0
	minSoilMoisture  = 10.0
	maxSoilMoisture  = 90.0

	baseTemperature = 25.0
	latTempRate     = 0.5

	tropicPrecipBase = 80.0
	polarPrecipBase  = 40.0

	monthsPerYear = 12
)

// ClimateData - смоделированные температура и месячные осадки локации.
type ClimateData struct {
	Temperature   int `json:"temperature"`   // °C
	Precipitation int `json:"precipitation"` // мм/месяц
}

// Provider выдаёт процедурно смоделированные спутниковые данные.
// Значения детерминированы широтой плюс небольшой шум; реальные
// API (SMAP, Crop-CASMA) здесь сознательно не используются.
type Provider struct {
	log   *zap.Logger
	cache *Cache

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewProvider создаёт провайдер поверх переданного кэша.
// Передача nil rng включает источник, засеянный текущим временем.
func NewProvider(log *zap.Logger, cache *Cache, rng *rand.Rand) *Provider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Provider{
		log:   log,
		cache: cache,
		rng:   rng,
		now:   time.Now,
	}
}

// noise возвращает равномерный шум в [-spread, +spread].
func (p *Provider) noise(spread float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()*2*spread - spread
}

// SoilMoisture - влажность почвы в процентах: база 50, бонус тропикам,
// штраф высоким широтам, шум ±10, диапазон [10, 90].
func (p *Provider) SoilMoisture(lat, lon float64) float64 {
	key := cacheKey("soil", lat, lon)
	if cached, ok := p.cache.Get(key); ok {
		return cached.(float64)
	}

	latFactor := soilPolarPenalty
	if math.Abs(lat) < tropicLatitude {
		latFactor = soilTropicBonus
	}
	moisture := soilBase + latFactor + p.noise(10)
	moisture = math.Max(minSoilMoisture, math.Min(maxSoilMoisture, moisture))

	p.cache.Set(key, moisture)
	return moisture
}

// Climate - температура и осадки: теплее и влажнее у экватора.
func (p *Provider) Climate(lat, lon float64) ClimateData {
	key := cacheKey("climate", lat, lon)
	if cached, ok := p.cache.Get(key); ok {
		return cached.(ClimateData)
	}

	temperature := int(math.Round(baseTemperature - math.Abs(lat)*latTempRate + p.noise(5)))

	precipBase := polarPrecipBase
	if math.Abs(lat) < tropicLatitude {
		precipBase = tropicPrecipBase
	}
	precipitation := int(math.Round(precipBase + p.noise(20)))

	data := ClimateData{Temperature: temperature, Precipitation: precipitation}
	p.cache.Set(key, data)
	return data
}

// VegetationIndex - NDVI в [0, 1], производный от влажности почвы.
func (p *Provider) VegetationIndex(lat, lon float64) float64 {
	key := cacheKey("ndvi", lat, lon)
	if cached, ok := p.cache.Get(key); ok {
		return cached.(float64)
	}

	soil := p.SoilMoisture(lat, lon)
	p.mu.Lock()
	ndvi := (soil/100)*0.8 + p.rng.Float64()*0.2
	p.mu.Unlock()
	ndvi = math.Max(0, math.Min(1, ndvi))

	p.cache.Set(key, ndvi)
	return ndvi
}

// Snapshot собирает полный снимок данных для локации.
func (p *Provider) Snapshot(lat, lon float64) models.EarthData {
	climate := p.Climate(lat, lon)
	snapshot := models.EarthData{
		SoilMoisture:    p.SoilMoisture(lat, lon),
		Temperature:     climate.Temperature,
		Precipitation:   climate.Precipitation,
		VegetationIndex: p.VegetationIndex(lat, lon),
		Source:          Source,
	}

	p.log.Debug("earth data snapshot built",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("soil_moisture", snapshot.SoilMoisture),
		zap.Int("temperature", snapshot.Temperature))

	return snapshot
}

// AnnualClimate - детерминированный среднегодовой контекст локации
// без шума, для взвешивания пула случайных событий. Месячная база
// осадков переводится в годовую сумму.
func (p *Provider) AnnualClimate(lat float64) models.LocationClimate {
	precipBase := polarPrecipBase
	if math.Abs(lat) < tropicLatitude {
		precipBase = tropicPrecipBase
	}
	return models.LocationClimate{
		AvgTemperature:   baseTemperature - math.Abs(lat)*latTempRate,
		AvgPrecipitation: precipBase * monthsPerYear,
	}
}
