package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terrafarm-server/internal/earthdata"
	"terrafarm-server/internal/service"
	"terrafarm-server/shared/models"
)

// GameHandler отдаёт HTTP-поверхность игры и спутниковых данных.
type GameHandler struct {
	gameService *service.GameService
	earth       EarthDataService
	log         *zap.Logger
}

// EarthDataService - поверхность поставщика спутниковых данных,
// нужная публичным эндпоинтам.
type EarthDataService interface {
	SoilMoisture(lat, lon float64) float64
	Climate(lat, lon float64) earthdata.ClimateData
	VegetationIndex(lat, lon float64) float64
	Snapshot(lat, lon float64) models.EarthData
	SatelliteImages(lat, lon float64, date string) models.SatelliteImages
}

// NewGameHandler создает обработчик.
func NewGameHandler(gameService *service.GameService, earth EarthDataService, log *zap.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		earth:       earth,
		log:         log,
	}
}

// RegisterRoutes регистрирует маршруты игры и спутниковых данных.
func (h *GameHandler) RegisterRoutes(router *gin.Engine) {
	gameGroup := router.Group("/api/game")
	{
		gameGroup.POST("/start", h.startGame)
		gameGroup.POST("/choice", h.processChoice)
		gameGroup.POST("/stats", h.getStats)
		gameGroup.POST("/purchase", h.purchaseResources)
	}

	earthGroup := router.Group("/api/earthdata")
	{
		earthGroup.GET("/soil-moisture", h.getSoilMoisture)
		earthGroup.GET("/climate", h.getClimate)
		earthGroup.GET("/vegetation", h.getVegetation)
		earthGroup.GET("/all", h.getAllEarthData)
		earthGroup.GET("/satellite-image", h.getSatelliteImage)
	}
}
