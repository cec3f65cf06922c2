package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terrafarm-server/shared/models"
)

// handleServiceError переводит ошибки сервисного слоя в HTTP-статусы.
// Недостача ресурсов дополнительно несёт список недостач в теле ответа.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	var insufficientErr *models.InsufficientResourcesError

	switch {
	case errors.As(err, &insufficientErr):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{
			Error:      insufficientErr.Error(),
			Shortfalls: insufficientErr.Shortfalls,
		}
	case errors.Is(err, models.ErrInsufficientResources):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, models.ErrInvalidOption):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, models.ErrValidation):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, models.ErrGameOver):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Error: err.Error()}
	default:
		zap.L().Error("unhandled internal error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "an unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

// badRequest - отказ на этапе разбора тела или query-параметров.
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: message})
}
