package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terrafarm-server/shared/models"
)

func (h *GameHandler) startGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "farm location is required")
		return
	}

	state, scenario, err := h.gameService.StartNewGame(c.Request.Context(), *req.FarmLocation, req.FarmName)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GameResponse{
		Success:   true,
		GameState: state,
		Scenario:  scenario,
	})
}

func (h *GameHandler) processChoice(c *gin.Context) {
	var req choiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game state and option id are required")
		return
	}

	result, err := h.gameService.ProcessChoice(c.Request.Context(), req.GameState, req.OptionID, req.SelectedOption)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GameResponse{
		Success:     true,
		GameState:   result.State,
		Scenario:    result.Scenario,
		RandomEvent: result.Event,
		Message:     result.Message,
	})
}

func (h *GameHandler) getStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game state is required")
		return
	}

	stats, err := h.gameService.GetStats(req.GameState)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{
		Success: true,
		Stats:   stats,
	})
}

func (h *GameHandler) purchaseResources(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "game state, resource type and quantity are required")
		return
	}

	state, err := h.gameService.PurchaseResources(req.GameState, req.ResourceType, req.Quantity)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.log.Debug("purchase processed",
		zap.String("game_id", state.ID),
		zap.String("resource", req.ResourceType))

	c.JSON(http.StatusOK, models.GameResponse{
		Success:   true,
		GameState: state,
		Message:   "Purchase successful",
	})
}
