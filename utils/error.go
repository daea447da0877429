package utils

import (
	"net/http"

	"furcare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, models.APIResponse{
					Success: false,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONSuccess sends the standard success envelope.
func JSONSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, models.APIResponse{Success: true, Data: data, Message: message})
}

// JSONError sends a standardized JSON error response. Unexpected errors are logged and
// their details are withheld from the client.
func JSONError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		GetLogger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message = "Internal Server Error"
	} else {
		GetLogger().Warn("Request rejected", zap.String("path", c.FullPath()), zap.String("reason", message))
	}
	c.JSON(status, models.APIResponse{Success: false, Message: message})
}
