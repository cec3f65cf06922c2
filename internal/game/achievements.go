package game

import (
	"time"

	"terrafarm-server/shared/models"
)

// achievementRule - одно правило разблокировки. Порядок правил фиксирован:
// при одновременном выполнении нескольких условий достижения добавляются
// в порядке объявления.
type achievementRule struct {
	ID          string
	Title       string
	Description string
	Qualifies   func(state *models.GameState) bool
}

var achievementRules = []achievementRule{
	{
		ID:          "first_sustainable",
		Title:       "Sustainable Farmer",
		Description: "Reached 80 sustainability points",
		Qualifies: func(s *models.GameState) bool {
			return s.Metrics.Sustainability >= 80
		},
	},
	{
		ID:          "first_productive",
		Title:       "Efficient Producer",
		Description: "Reached 80 production points",
		Qualifies: func(s *models.GameState) bool {
			return s.Metrics.Production >= 80
		},
	},
	{
		ID:          "perfect_balance",
		Title:       "Perfect Balance",
		Description: "Kept both metrics above 70",
		Qualifies: func(s *models.GameState) bool {
			return s.Metrics.Production >= 70 && s.Metrics.Sustainability >= 70
		},
	},
	{
		ID:          "survivor",
		Title:       "Survivor",
		Description: "Completed 10 turns",
		Qualifies: func(s *models.GameState) bool {
			return s.Turn >= 10
		},
	},
}

// EvaluateAchievements возвращает достижения, разблокированные текущим
// состоянием. Чистая функция: состояние не изменяется. Уже имеющиеся
// достижения никогда не возвращаются повторно (идемпотентность по ID),
// и однажды разблокированное не отзывается при падении метрик.
func EvaluateAchievements(state *models.GameState, now time.Time) []models.Achievement {
	var unlocked []models.Achievement
	for _, rule := range achievementRules {
		if state.HasAchievement(rule.ID) {
			continue
		}
		if !rule.Qualifies(state) {
			continue
		}
		unlocked = append(unlocked, models.Achievement{
			ID:          rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			UnlockedAt:  now,
		})
	}
	return unlocked
}
