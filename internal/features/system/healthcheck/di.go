package system_healthcheck

import (
	"os"
	"sync"

	"trailiva-backend/internal/storage"
	"trailiva-backend/internal/util/logger"
)

var (
	healthcheckController *HealthcheckController
	healthcheckOnce       sync.Once
)

func GetHealthcheckController() *HealthcheckController {
	healthcheckOnce.Do(func() {
		sqlDB, err := storage.GetDb().DB()
		if err != nil {
			logger.GetLogger().Error("Failed to get database handle", "error", err)
			os.Exit(1)
		}

		healthcheckController = NewHealthcheckController(NewHealthcheckService(sqlDB))
	})

	return healthcheckController
}
