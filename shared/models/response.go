package models

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Error      string              `json:"error"`
	Shortfalls []ResourceShortfall `json:"shortfalls,omitempty"`
}

// GameResponse - стандартный успешный ответ игровых эндпоинтов.
// Scenario отсутствует, когда игра завершена; RandomEvent - когда
// на разрешённом ходу не было запланировано событие.
type GameResponse struct {
	Success     bool          `json:"success"`
	GameState   *GameState    `json:"gameState"`
	Scenario    *GameScenario `json:"scenario,omitempty"`
	RandomEvent *RandomEvent  `json:"randomEvent,omitempty"`
	Message     string        `json:"message,omitempty"`
}

// StatsResponse - ответ эндпоинта статистики.
type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   GameStats `json:"stats"`
}
