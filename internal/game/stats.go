package game

import (
	"math"

	"terrafarm-server/shared/models"
)

// Stats вычисляет производные агрегаты по истории игры. Чистая функция,
// состояние не изменяется.
//
// Средние метрики восстанавливаются обратным проходом по истории: от
// текущего значения последовательно вычитаются дельты решений. Обратная
// реконструкция не учитывает срезание на границах диапазона и шоки
// случайных событий, это осознанное приближение.
func Stats(state *models.GameState) models.GameStats {
	avgProduction := averageMetric(state.Metrics.Production, state.History, func(d models.Decision) int {
		return d.Impacts.Production
	})
	avgSustainability := averageMetric(state.Metrics.Sustainability, state.History, func(d models.Decision) int {
		return d.Impacts.Sustainability
	})

	var totalProductionGain, totalSustainabilityGain int
	for _, d := range state.History {
		totalProductionGain += max(0, d.Impacts.Production)
		totalSustainabilityGain += max(0, d.Impacts.Sustainability)
	}

	return models.GameStats{
		AvgProduction:           avgProduction,
		AvgSustainability:       avgSustainability,
		TotalProductionGain:     totalProductionGain,
		TotalSustainabilityGain: totalSustainabilityGain,
		DecisionsCount:          len(state.History),
		AchievementsCount:       len(state.Achievements),
		FinalScore:              float64(state.Metrics.Production+state.Metrics.Sustainability) / 2,
	}
}

func averageMetric(current int, history []models.Decision, impact func(models.Decision) int) float64 {
	sum := float64(current)
	value := current
	for i := len(history) - 1; i >= 0; i-- {
		value -= impact(history[i])
		sum += float64(value)
	}
	avg := sum / float64(len(history)+1)
	return math.Round(avg*10) / 10
}
