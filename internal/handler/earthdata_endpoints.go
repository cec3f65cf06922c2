package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseCoordinates извлекает lat/lon из query-параметров.
// Второй результат false означает, что ответ уже отправлен.
func parseCoordinates(c *gin.Context) (float64, float64, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		badRequest(c, "latitude and longitude are required")
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		badRequest(c, "latitude must be a number")
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		badRequest(c, "longitude must be a number")
		return 0, 0, false
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		badRequest(c, "coordinates are out of range")
		return 0, 0, false
	}

	return lat, lon, true
}

func (h *GameHandler) getSoilMoisture(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.earth.SoilMoisture(lat, lon),
	})
}

func (h *GameHandler) getClimate(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.earth.Climate(lat, lon),
	})
}

func (h *GameHandler) getVegetation(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.earth.VegetationIndex(lat, lon),
	})
}

func (h *GameHandler) getAllEarthData(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.earth.Snapshot(lat, lon),
	})
}

func (h *GameHandler) getSatelliteImage(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": h.earth.SatelliteImages(lat, lon, c.Query("date")),
	})
}
