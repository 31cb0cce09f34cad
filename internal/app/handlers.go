package app

import (
	httpH "github.com/beyzakarasahann/AcuRate-sub001/internal/http/handlers"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type Handlers struct {
	Aggregate   *httpH.AggregateHandler
	Achievement *httpH.AchievementHandler
	Health      *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Aggregate:   httpH.NewAggregateHandler(log, serviceset.Aggregation),
		Achievement: httpH.NewAchievementHandler(log, serviceset.Aggregation),
		Health:      httpH.NewHealthHandler(),
	}
}
