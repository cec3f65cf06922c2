package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrafarm-server/shared/models"
)

func TestScheduleEventTurns(t *testing.T) {
	t.Run("Always three distinct turns within the window", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			rng := rand.New(rand.NewSource(seed))
			turns := ScheduleEventTurns(rng, 20)
			require.Len(t, turns, 3, "seed %d", seed)

			seen := map[int]bool{}
			for i, turn := range turns {
				assert.GreaterOrEqual(t, turn, 2)
				assert.LessOrEqual(t, turn, 18)
				assert.False(t, seen[turn], "duplicate turn %d", turn)
				seen[turn] = true
				if i > 0 {
					assert.Greater(t, turn, turns[i-1], "turns must be sorted")
				}
			}
		}
	})

	t.Run("Window respects short sessions", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		turns := ScheduleEventTurns(rng, 6)
		// доступны только ходы 2..4
		require.Len(t, turns, 3)
		for _, turn := range turns {
			assert.GreaterOrEqual(t, turn, 2)
			assert.LessOrEqual(t, turn, 4)
		}
	})

	t.Run("No schedule when the window is empty", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		assert.Empty(t, ScheduleEventTurns(rng, 3))
	})
}

func TestSelectEvent(t *testing.T) {
	templateIDs := map[string]bool{}
	for _, tpl := range eventPool {
		templateIDs[tpl.ID] = true
	}

	t.Run("Without context any template from the pool is possible", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 100; i++ {
			tpl := SelectEvent(rng, nil)
			assert.True(t, templateIDs[tpl.ID])
		}
	})

	t.Run("Impacts are always negative", func(t *testing.T) {
		for _, tpl := range eventPool {
			assert.Negative(t, tpl.Impacts.Production, tpl.ID)
			assert.Negative(t, tpl.Impacts.Sustainability, tpl.ID)
		}
	})

	t.Run("Hot and arid climate biases the pool toward drought", func(t *testing.T) {
		climate := &models.LocationClimate{AvgTemperature: 30, AvgPrecipitation: 300}
		rng := rand.New(rand.NewSource(11))

		counts := map[string]int{}
		const draws = 5000
		for i := 0; i < draws; i++ {
			counts[SelectEvent(rng, climate).ID]++
		}

		// В пуле 13 записей, из них 3 - drought: его частота должна заметно
		// превышать частоту одиночных шаблонов.
		assert.Greater(t, counts["drought"], counts["frost"]*2)
	})

	t.Run("Wet climate biases toward rain and fungus", func(t *testing.T) {
		climate := &models.LocationClimate{AvgTemperature: 20, AvgPrecipitation: 1500}
		rng := rand.New(rand.NewSource(13))

		counts := map[string]int{}
		const draws = 5000
		for i := 0; i < draws; i++ {
			counts[SelectEvent(rng, climate).ID]++
		}

		assert.Greater(t, counts["heavy_rain"], counts["frost"])
		assert.Greater(t, counts["plague_fungus"], counts["frost"])
	})
}

func TestGenerateEvent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	now := testTime()

	event := GenerateEvent(rng, 7, nil, now)
	assert.Equal(t, 7, event.Turn)
	assert.Equal(t, now, event.Timestamp)
	assert.NotEmpty(t, event.Name)
	assert.Contains(t, []string{"climate", "plague", "market", "natural"}, event.Type)

	// ID уникален по шаблону и ходу
	found := false
	for _, tpl := range eventPool {
		if event.ID == fmt.Sprintf("%s_turn7", tpl.ID) {
			found = true
			assert.Equal(t, tpl.Impacts, event.Impacts)
		}
	}
	assert.True(t, found, "event id %q must derive from a pool template", event.ID)
}
