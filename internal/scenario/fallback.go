package scenario

import (
	"fmt"

	"go.uber.org/zap"

	"terrafarm-server/shared/models"
)

// fallbackTemplate - запасной сценарий без AI. Нарратив собирается
// из шаблона и живых данных снимка, варианты фиксированы.
type fallbackTemplate struct {
	narrative   func(state *models.GameState, snapshot models.EarthData) string
	nasaContext string
	options     []models.GameOption
}

var fallbackTemplates = []fallbackTemplate{
	{
		narrative: func(state *models.GameState, snapshot models.EarthData) string {
			moisture := "low"
			if snapshot.SoilMoisture > 60 {
				moisture = "high"
			}
			health := "moderate"
			if snapshot.VegetationIndex > 0.6 {
				health = "good"
			}
			return fmt.Sprintf("Turn %d: NASA satellite data shows your region is going through a period of %s soil moisture. The temperature is %d°C and the expected precipitation is %dmm. The vegetation index (NDVI) stands at %.2f, indicating %s plant health.",
				state.Turn, moisture, snapshot.Temperature, snapshot.Precipitation, snapshot.VegetationIndex, health)
		},
		nasaContext: "The NDVI (Normalized Difference Vegetation Index) is measured by NASA satellites and indicates vegetation health. Values above 0.6 indicate healthy plants. Soil moisture is crucial for irrigation decisions - values below 40% signal a need for water.",
		options: []models.GameOption{
			{
				ID:          "A",
				Description: "Irrigate the crops intensively",
				Impacts:     models.MetricImpacts{Production: 15, Sustainability: -10},
				Educational: "Intensive irrigation raises production in the short term, but can deplete water resources and degrade the soil over time.",
				ResourceCost: &models.ResourceCost{
					Water: 30,
					Money: 200,
				},
			},
			{
				ID:          "B",
				Description: "Install a drip irrigation system",
				Impacts:     models.MetricImpacts{Production: 8, Sustainability: 12},
				Educational: "Drip irrigation saves water (up to 60%) and improves sustainability, but requires an upfront investment.",
				ResourceCost: &models.ResourceCost{
					Water: 15,
					Money: 350,
				},
			},
			{
				ID:          "C",
				Description: "Plant drought-resistant crops",
				Impacts:     models.MetricImpacts{Production: -5, Sustainability: 15},
				Educational: "Crops adapted to the local climate need less irrigation and are more resilient to climate change.",
				ResourceCost: &models.ResourceCost{
					Seeds: 20,
					Money: 150,
				},
			},
		},
	},
	{
		narrative: func(state *models.GameState, snapshot models.EarthData) string {
			return fmt.Sprintf("Turn %d: NASA satellites detected changing climate conditions. With a temperature of %d°C and precipitation of %dmm, you need to decide how to manage the soil. Current moisture stands at %.1f%%.",
				state.Turn, snapshot.Temperature, snapshot.Precipitation, snapshot.SoilMoisture)
		},
		nasaContext: "Precipitation and temperature are collected by NASA weather satellites. These data help forecast irrigation needs and choose adequate soil management practices.",
		options: []models.GameOption{
			{
				ID:          "A",
				Description: "Apply chemical fertilizer for rapid growth",
				Impacts:     models.MetricImpacts{Production: 20, Sustainability: -15},
				Educational: "Chemical fertilizers boost production quickly, but can contaminate groundwater and degrade soil biodiversity.",
				ResourceCost: &models.ResourceCost{
					Fertilizer: 40,
					Money:      300,
				},
			},
			{
				ID:          "B",
				Description: "Use composting and organic fertilization",
				Impacts:     models.MetricImpacts{Production: 5, Sustainability: 18},
				Educational: "Organic fertilization improves soil structure, retains water and promotes biodiversity, but acts more slowly.",
				ResourceCost: &models.ResourceCost{
					Fertilizer: 20,
					Money:      150,
				},
			},
		},
	},
}

// fallbackScenario выбирает шаблон детерминированно по номеру хода:
// один и тот же ход всегда получает один и тот же сценарий.
func (g *Generator) fallbackScenario(state *models.GameState, snapshot models.EarthData) *models.GameScenario {
	tpl := fallbackTemplates[state.Turn%len(fallbackTemplates)]

	g.log.Debug("using fallback scenario",
		zap.String("game_id", state.ID),
		zap.Int("turn", state.Turn))

	options := append([]models.GameOption(nil), tpl.options...)

	return &models.GameScenario{
		Narrative:   tpl.narrative(state, snapshot),
		NASAContext: tpl.nasaContext,
		EarthData:   snapshot,
		Options:     options,
	}
}
