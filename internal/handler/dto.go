package handler

import "terrafarm-server/shared/models"

// startGameRequest - тело POST /api/game/start.
type startGameRequest struct {
	FarmLocation *models.Coordinates `json:"farmLocation" binding:"required"`
	FarmName     string              `json:"farmName"`
}

// choiceRequest - тело POST /api/game/choice. SelectedOption может
// отсутствовать: опция будет восстановлена по ID из сценария хода.
type choiceRequest struct {
	GameState      *models.GameState  `json:"gameState" binding:"required"`
	OptionID       string             `json:"optionId" binding:"required"`
	SelectedOption *models.GameOption `json:"selectedOption"`
}

// statsRequest - тело POST /api/game/stats.
type statsRequest struct {
	GameState *models.GameState `json:"gameState" binding:"required"`
}

// purchaseRequest - тело POST /api/game/purchase.
type purchaseRequest struct {
	GameState    *models.GameState `json:"gameState" binding:"required"`
	ResourceType string            `json:"resourceType" binding:"required"`
	Quantity     int               `json:"quantity" binding:"required"`
}
