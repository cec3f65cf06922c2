package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terrafarm-server/shared/models"
)

func TestStats(t *testing.T) {
	t.Run("Fresh game", func(t *testing.T) {
		state := &models.GameState{
			Metrics: models.GameMetrics{Production: 20, Sustainability: 20},
		}
		stats := Stats(state)
		assert.Equal(t, 20.0, stats.AvgProduction)
		assert.Equal(t, 20.0, stats.AvgSustainability)
		assert.Equal(t, 0, stats.DecisionsCount)
		assert.Equal(t, 20.0, stats.FinalScore)
	})

	t.Run("Averages reconstructed from history", func(t *testing.T) {
		// Траектория продукции: 20 -> 30 -> 25; среднее (20+30+25)/3 = 25
		state := &models.GameState{
			Metrics: models.GameMetrics{Production: 25, Sustainability: 40},
			History: []models.Decision{
				{Turn: 1, Impacts: models.MetricImpacts{Production: 10, Sustainability: 15}},
				{Turn: 2, Impacts: models.MetricImpacts{Production: -5, Sustainability: 5}},
			},
			Achievements: []models.Achievement{{ID: "survivor"}},
		}

		stats := Stats(state)
		assert.Equal(t, 25.0, stats.AvgProduction)
		// Устойчивость: 20 -> 35 -> 40; среднее 95/3 = 31.7
		assert.Equal(t, 31.7, stats.AvgSustainability)
		assert.Equal(t, 10, stats.TotalProductionGain)
		assert.Equal(t, 20, stats.TotalSustainabilityGain)
		assert.Equal(t, 2, stats.DecisionsCount)
		assert.Equal(t, 1, stats.AchievementsCount)
		assert.Equal(t, 32.5, stats.FinalScore)
	})
}
