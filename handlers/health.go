package handlers

import (
	"net/http"

	"furcare/models"
	"furcare/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last background health check. Without Mongo nothing works,
// so that alone turns the answer into a 503.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, models.APIResponse{
		Success: status.Mongo,
		Data:    status,
		Message: "FurCare scheduling service",
	})
}
