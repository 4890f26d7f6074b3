package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duynhne/rslist-service/internal/core/domain"
)

// writeServiceError converts a failure from the logic layer into the wire
// contract: client faults become 400 with {"error": message}, a miss becomes
// an empty 404, anything else is a 500.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		missing *domain.MissingParamError
		exists  *domain.ResourceExistsError
	)

	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
	case errors.As(err, &exists):
		c.JSON(http.StatusBadRequest, gin.H{"error": exists.Error()})
	case errors.Is(err, domain.ErrUserNotExist):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUserNotExist.Error()})
	case errors.Is(err, domain.ErrIDMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrIDMismatch.Error()})
	case errors.Is(err, domain.ErrUserIDIncorrect):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUserIDIncorrect.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
