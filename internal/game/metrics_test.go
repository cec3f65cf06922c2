package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"terrafarm-server/shared/models"
)

func TestClampMetric(t *testing.T) {
	assert.Equal(t, 0, ClampMetric(-5))
	assert.Equal(t, 0, ClampMetric(0))
	assert.Equal(t, 55, ClampMetric(55))
	assert.Equal(t, 100, ClampMetric(100))
	assert.Equal(t, 100, ClampMetric(140))
}

func TestApplyImpacts(t *testing.T) {
	t.Run("Independent deltas", func(t *testing.T) {
		m := ApplyImpacts(models.GameMetrics{Production: 50, Sustainability: 40}, models.MetricImpacts{Production: 15, Sustainability: -10})
		assert.Equal(t, models.GameMetrics{Production: 65, Sustainability: 30}, m)
	})

	t.Run("Metrics stay in range for any delta sequence", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		m := models.GameMetrics{Production: 50, Sustainability: 50}
		for i := 0; i < 1000; i++ {
			m = ApplyImpacts(m, models.MetricImpacts{
				Production:     rng.Intn(81) - 40,
				Sustainability: rng.Intn(81) - 40,
			})
			assert.GreaterOrEqual(t, m.Production, 0)
			assert.LessOrEqual(t, m.Production, 100)
			assert.GreaterOrEqual(t, m.Sustainability, 0)
			assert.LessOrEqual(t, m.Sustainability, 100)
		}
	})
}

func TestEvaluateTerminal(t *testing.T) {
	t.Run("Game continues", func(t *testing.T) {
		gameOver, victory := EvaluateTerminal(models.GameMetrics{Production: 50, Sustainability: 50}, 5, 20)
		assert.False(t, gameOver)
		assert.False(t, victory)
	})

	t.Run("Defeat below threshold", func(t *testing.T) {
		gameOver, victory := EvaluateTerminal(models.GameMetrics{Production: 19, Sustainability: 80}, 5, 20)
		assert.True(t, gameOver)
		assert.False(t, victory)

		gameOver, victory = EvaluateTerminal(models.GameMetrics{Production: 80, Sustainability: 19}, 5, 20)
		assert.True(t, gameOver)
		assert.False(t, victory)
	})

	t.Run("Threshold value of 20 is not a defeat", func(t *testing.T) {
		gameOver, _ := EvaluateTerminal(models.GameMetrics{Production: 20, Sustainability: 20}, 5, 20)
		assert.False(t, gameOver)
	})

	t.Run("Victory at turn exhaustion with both metrics at 80", func(t *testing.T) {
		gameOver, victory := EvaluateTerminal(models.GameMetrics{Production: 80, Sustainability: 80}, 21, 20)
		assert.True(t, gameOver)
		assert.True(t, victory)
	})

	t.Run("Turn exhaustion below victory threshold", func(t *testing.T) {
		gameOver, victory := EvaluateTerminal(models.GameMetrics{Production: 79, Sustainability: 90}, 21, 20)
		assert.True(t, gameOver)
		assert.False(t, victory)
	})

	t.Run("Failing metric on final turn resolves as defeat", func(t *testing.T) {
		// Проверка поражения имеет приоритет над исчерпанием ходов
		gameOver, victory := EvaluateTerminal(models.GameMetrics{Production: 10, Sustainability: 90}, 21, 20)
		assert.True(t, gameOver)
		assert.False(t, victory)
	})
}
