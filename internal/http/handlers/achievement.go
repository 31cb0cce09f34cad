package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/http/response"
	apperrors "github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/errors"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/services"
)

type AchievementHandler struct {
	log     *logger.Logger
	service services.AggregationService
}

func NewAchievementHandler(log *logger.Logger, service services.AggregationService) *AchievementHandler {
	return &AchievementHandler{
		log:     log.With("handler", "AchievementHandler"),
		service: service,
	}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return 0, false
	}
	return id, true
}

func (h *AchievementHandler) DepartmentAchievement(c *gin.Context) {
	departmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.service.DepartmentAchievement(c.Request.Context(), departmentID)
	if err != nil {
		h.log.Error("DepartmentAchievement failed", "error", err, "department_id", departmentID)
		response.RespondFromError(c, "department_achievement_failed", err)
		return
	}
	response.RespondOK(c, result)
}

func (h *AchievementHandler) DepartmentMatrix(c *gin.Context) {
	departmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	matrix, err := h.service.DepartmentMatrix(c.Request.Context(), departmentID)
	if err != nil {
		h.log.Error("DepartmentMatrix failed", "error", err, "department_id", departmentID)
		response.RespondFromError(c, "department_matrix_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"matrix": matrix})
}

// StudentStrengths accepts an optional ?top=N override for the ranked
// strength count.
func (h *AchievementHandler) StudentStrengths(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	topN := 0
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_top", apperrors.ErrInvalidArgument)
			return
		}
		topN = n
	}
	result, err := h.service.StudentStrengths(c.Request.Context(), studentID, topN)
	if err != nil {
		h.log.Error("StudentStrengths failed", "error", err, "student_id", studentID)
		response.RespondFromError(c, "student_strengths_failed", err)
		return
	}
	response.RespondOK(c, result)
}
