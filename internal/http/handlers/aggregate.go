package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/http/response"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/modules/achievement/steps"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/services"
)

type AggregateHandler struct {
	log      *logger.Logger
	service  services.AggregationService
	validate *validator.Validate
}

func NewAggregateHandler(log *logger.Logger, service services.AggregationService) *AggregateHandler {
	return &AggregateHandler{
		log:      log.With("handler", "AggregateHandler"),
		service:  service,
		validate: validator.New(),
	}
}

type aggregateRequest struct {
	Snapshot *steps.Snapshot `json:"snapshot" validate:"required"`
	Options  *steps.Options  `json:"options"`
}

// Aggregate runs the pipeline over a caller-supplied snapshot. The snapshot
// is taken as-is: unresolvable records inside it are skipped and counted, not
// rejected, so the only 400s here are unparseable JSON and empty payloads.
func (h *AggregateHandler) Aggregate(c *gin.Context) {
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "malformed_payload", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result := h.service.AggregateSnapshot(c.Request.Context(), *req.Snapshot, req.Options)
	response.RespondOK(c, result)
}
