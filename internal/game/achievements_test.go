package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrafarm-server/shared/models"
)

func TestEvaluateAchievements(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("No achievements on a fresh state", func(t *testing.T) {
		state := &models.GameState{
			Turn:    1,
			Metrics: models.GameMetrics{Production: 20, Sustainability: 20},
		}
		assert.Empty(t, EvaluateAchievements(state, now))
	})

	t.Run("Multiple rules fire together in declaration order", func(t *testing.T) {
		state := &models.GameState{
			Turn:    5,
			Metrics: models.GameMetrics{Production: 85, Sustainability: 90},
		}
		unlocked := EvaluateAchievements(state, now)
		require.Len(t, unlocked, 3)
		assert.Equal(t, "first_sustainable", unlocked[0].ID)
		assert.Equal(t, "first_productive", unlocked[1].ID)
		assert.Equal(t, "perfect_balance", unlocked[2].ID)
		for _, a := range unlocked {
			assert.Equal(t, now, a.UnlockedAt)
		}
	})

	t.Run("Already unlocked achievements are never returned again", func(t *testing.T) {
		state := &models.GameState{
			Turn:    5,
			Metrics: models.GameMetrics{Production: 85, Sustainability: 90},
		}
		state.Achievements = append(state.Achievements, EvaluateAchievements(state, now)...)

		// Повторная оценка того же состояния ничего не добавляет
		assert.Empty(t, EvaluateAchievements(state, now))
	})

	t.Run("Survivor unlocks at turn 10 and only once", func(t *testing.T) {
		state := &models.GameState{
			Turn:    9,
			Metrics: models.GameMetrics{Production: 50, Sustainability: 50},
		}
		assert.Empty(t, EvaluateAchievements(state, now))

		state.Turn = 10
		unlocked := EvaluateAchievements(state, now)
		require.Len(t, unlocked, 1)
		assert.Equal(t, "survivor", unlocked[0].ID)
		state.Achievements = append(state.Achievements, unlocked...)

		for turn := 11; turn <= 16; turn++ {
			state.Turn = turn
			assert.Empty(t, EvaluateAchievements(state, now), "turn %d", turn)
		}
	})

	t.Run("Unlocked achievement is not revoked when metrics drop", func(t *testing.T) {
		state := &models.GameState{
			Turn:    5,
			Metrics: models.GameMetrics{Production: 85, Sustainability: 50},
		}
		state.Achievements = append(state.Achievements, EvaluateAchievements(state, now)...)
		require.True(t, state.HasAchievement("first_productive"))

		state.Metrics.Production = 30
		assert.Empty(t, EvaluateAchievements(state, now))
		assert.True(t, state.HasAchievement("first_productive"))
	})
}
