package app

import (
	"gorm.io/gorm"

	redisclient "github.com/beyzakarasahann/AcuRate-sub001/internal/clients/redis"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/services"
)

type Services struct {
	Aggregation services.AggregationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache redisclient.ResultCache) Services {
	log.Info("Wiring services...")
	return Services{
		Aggregation: services.NewAggregationService(db, log, reposet.aggregationRepos(), cache, cfg.CacheTTL, cfg.Engine),
	}
}
