package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/beyzakarasahann/AcuRate-sub001/internal/http/handlers"
	httpMW "github.com/beyzakarasahann/AcuRate-sub001/internal/http/middleware"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AggregateHandler   *httpH.AggregateHandler
	AchievementHandler *httpH.AchievementHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("acurate-engine"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Stateless aggregation over a caller-supplied snapshot
		if cfg.AggregateHandler != nil {
			api.POST("/aggregate", cfg.AggregateHandler.Aggregate)
		}

		// Store-backed achievement views
		if cfg.AchievementHandler != nil {
			api.GET("/departments/:id/achievement", cfg.AchievementHandler.DepartmentAchievement)
			api.GET("/departments/:id/matrix", cfg.AchievementHandler.DepartmentMatrix)
			api.GET("/students/:id/strengths", cfg.AchievementHandler.StudentStrengths)
		}
	}

	return r
}
