package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"terrafarm-server/shared/models"
)

// EventTemplate - шаблон случайного события. Влияние всегда негативное:
// случайные события - это шоки, не бонусы.
type EventTemplate struct {
	ID          string
	Name        string
	Description string
	Impacts     models.MetricImpacts
	Type        string
}

const (
	scheduledEventCount = 3
	minEventTurn        = 2
	maxEventTurnCap     = 18
)

// Пороги климатического взвешивания пула событий.
const (
	hotClimateTemp     = 25.0   // °C, среднегодовая
	aridClimatePrecip  = 500.0  // мм/год
	humidClimatePrecip = 1200.0 // мм/год
)

var eventPool = []EventTemplate{
	{
		ID:          "drought",
		Name:        "Sudden Drought",
		Description: "An unexpected heat wave has drastically reduced soil moisture. Crops are suffering from the lack of water and production has taken a hit.",
		Impacts:     models.MetricImpacts{Production: -12, Sustainability: -8},
		Type:        "climate",
	},
	{
		ID:          "frost",
		Name:        "Unexpected Frost",
		Description: "A cold front brought overnight frost, damaging part of the crops. Some plants did not survive the low temperatures.",
		Impacts:     models.MetricImpacts{Production: -15, Sustainability: -5},
		Type:        "climate",
	},
	{
		ID:          "plague_locusts",
		Name:        "Locust Infestation",
		Description: "A swarm of locusts passed through the region, consuming part of the vegetation. Production was severely affected this cycle.",
		Impacts:     models.MetricImpacts{Production: -18, Sustainability: -10},
		Type:        "plague",
	},
	{
		ID:          "hailstorm",
		Name:        "Hailstorm",
		Description: "A severe hailstorm damaged the plantations. Some crops were lost, though the soil did receive water.",
		Impacts:     models.MetricImpacts{Production: -14, Sustainability: -6},
		Type:        "climate",
	},
	{
		ID:          "heatwave",
		Name:        "Heat Wave",
		Description: "Extremely high temperatures affected plant development. Evapotranspiration increased, stressing the crops.",
		Impacts:     models.MetricImpacts{Production: -10, Sustainability: -12},
		Type:        "climate",
	},
	{
		ID:          "plague_fungus",
		Name:        "Fungal Disease",
		Description: "High humidity favored fungal growth in the plantations. Some crops were contaminated and had to be discarded.",
		Impacts:     models.MetricImpacts{Production: -13, Sustainability: -7},
		Type:        "plague",
	},
	{
		ID:          "heavy_rain",
		Name:        "Heavy Rainfall",
		Description: "Above-normal precipitation flooded parts of the farm. Waterlogged areas are hurting the plants' root systems.",
		Impacts:     models.MetricImpacts{Production: -9, Sustainability: -11},
		Type:        "climate",
	},
	{
		ID:          "wind_storm",
		Name:        "Windstorm",
		Description: "Strong winds knocked down plants and damaged structures. Soil erosion intensified in exposed areas.",
		Impacts:     models.MetricImpacts{Production: -11, Sustainability: -9},
		Type:        "natural",
	},
	{
		ID:          "price_drop",
		Name:        "Market Price Drop",
		Description: "The market was flooded with similar products, driving prices down. This season's revenue will be lower than expected.",
		Impacts:     models.MetricImpacts{Production: -8, Sustainability: -5},
		Type:        "market",
	},
	{
		ID:          "soil_erosion",
		Name:        "Soil Erosion",
		Description: "Poorly distributed rains and inadequate practices caused erosion in some areas. Soil quality has been compromised.",
		Impacts:     models.MetricImpacts{Production: -7, Sustainability: -15},
		Type:        "natural",
	},
}

// ScheduleEventTurns выбирает ходы, на которых сработают случайные события.
// Розыгрыш делается один раз при старте игры и не перекатывается. Ходы
// берутся равномерно без возвращения из [2, min(18, maxTurns-2)]: первый
// и последние два хода событий не получают.
func ScheduleEventTurns(rng *rand.Rand, maxTurns int) []int {
	maxTurn := min(maxEventTurnCap, maxTurns-2)
	if maxTurn < minEventTurn {
		return nil
	}

	available := make([]int, 0, maxTurn-minEventTurn+1)
	for t := minEventTurn; t <= maxTurn; t++ {
		available = append(available, t)
	}

	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	n := min(scheduledEventCount, len(available))
	scheduled := append([]int(nil), available[:n]...)
	sort.Ints(scheduled)
	return scheduled
}

// SelectEvent выбирает шаблон события. Климатический контекст (если задан)
// взвешивает пул дублированием релевантных шаблонов: жаркие регионы чаще
// получают засуху и жару, засушливые - еще больше засух, влажные - ливни
// и грибок. Это взвешивание дубликатами, не нормированная вероятностная
// модель.
func SelectEvent(rng *rand.Rand, climate *models.LocationClimate) EventTemplate {
	pool := append([]EventTemplate(nil), eventPool...)

	if climate != nil {
		if climate.AvgTemperature > hotClimateTemp {
			pool = append(pool, templatesByID("drought", "heatwave")...)
		}
		if climate.AvgPrecipitation < aridClimatePrecip {
			pool = append(pool, templatesByID("drought")...)
		}
		if climate.AvgPrecipitation > humidClimatePrecip {
			pool = append(pool, templatesByID("heavy_rain", "plague_fungus")...)
		}
	}

	return pool[rng.Intn(len(pool))]
}

// GenerateEvent создает готовое событие для конкретного хода.
func GenerateEvent(rng *rand.Rand, turn int, climate *models.LocationClimate, now time.Time) models.RandomEvent {
	template := SelectEvent(rng, climate)
	return models.RandomEvent{
		ID:          fmt.Sprintf("%s_turn%d", template.ID, turn),
		Name:        template.Name,
		Description: template.Description,
		Impacts:     template.Impacts,
		Type:        template.Type,
		Turn:        turn,
		Timestamp:   now,
	}
}

func templatesByID(ids ...string) []EventTemplate {
	var matched []EventTemplate
	for _, id := range ids {
		for _, t := range eventPool {
			if t.ID == id {
				matched = append(matched, t)
			}
		}
	}
	return matched
}
