package system_healthcheck

import (
	"net/http"

	"trailiva-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func NewHealthcheckController(healthcheckService *HealthcheckService) *HealthcheckController {
	return &HealthcheckController{healthcheckService}
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check that the service and its database are reachable
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	if err := c.healthcheckService.IsHealthy(ctx.Request.Context()); err != nil {
		logger.GetLogger().Warn("Healthcheck failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": ErrDatabaseUnavailable.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
