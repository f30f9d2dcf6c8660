package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idxpulse/idxpulse/internal/domain/dto"
	"github.com/idxpulse/idxpulse/internal/logger"
)

// ErrorHandler converts errors collected on the Gin context into a
// standardized 500 response when no handler has written one itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError writes a standardized error body with the given status and
// stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
