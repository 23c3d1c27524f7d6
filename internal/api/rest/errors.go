package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-portfolio/internal/api/shared/errors"
	"github.com/feral-file/ff-portfolio/internal/logger"
)

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewInvalidArgumentError(message, details...))
}

// respondError sends the classified error with its status code; 5xx are logged
func respondError(c *gin.Context, err error, fields ...zap.Field) {
	apiErr := apierrors.FromError(err)
	if apiErr.StatusCode() >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, fields...)
	}
	c.JSON(apiErr.StatusCode(), apiErr)
}

// respondIngestError sends the ingest specific error body
func respondIngestError(c *gin.Context, err error, fields ...zap.Field) {
	apiErr := apierrors.FromError(err)
	if apiErr.StatusCode() >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, fields...)
	}
	c.JSON(apiErr.StatusCode(), dto.IngestErrorResponse{
		Status:  dto.IngestStatusError,
		Message: apiErr.Message,
	})
}
