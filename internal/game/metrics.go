package game

import "terrafarm-server/shared/models"

// ClampMetric ограничивает значение метрики диапазоном [0, 100].
// Применяется после каждой дельты: инвариант диапазона держится всегда.
func ClampMetric(value int) int {
	if value < MinMetricValue {
		return MinMetricValue
	}
	if value > MaxMetricValue {
		return MaxMetricValue
	}
	return value
}

// ApplyImpacts применяет дельту к метрикам. Метрики независимы,
// каждая ограничивается отдельно.
func ApplyImpacts(m models.GameMetrics, d models.MetricImpacts) models.GameMetrics {
	return models.GameMetrics{
		Production:     ClampMetric(m.Production + d.Production),
		Sustainability: ClampMetric(m.Sustainability + d.Sustainability),
	}
}

// EvaluateTerminal вычисляет терминальное условие. Проверка поражения
// выполняется раньше проверки исчерпания ходов: состояние с провальной
// метрикой на последнем ходу разрешается как поражение, не как победа.
func EvaluateTerminal(m models.GameMetrics, turn, maxTurns int) (gameOver, victory bool) {
	if m.Production < GameOverThreshold || m.Sustainability < GameOverThreshold {
		return true, false
	}

	if turn > maxTurns {
		victory = m.Production >= VictoryThreshold && m.Sustainability >= VictoryThreshold
		return true, victory
	}

	return false, false
}
