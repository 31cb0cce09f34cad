package app

import (
	"github.com/gin-gonic/gin"

	httpx "github.com/beyzakarasahann/AcuRate-sub001/internal/http"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return httpx.NewRouter(httpx.RouterConfig{
		Log:                log,
		AggregateHandler:   handlerset.Aggregate,
		AchievementHandler: handlerset.Achievement,
		HealthHandler:      handlerset.Health,
	})
}
