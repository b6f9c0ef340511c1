package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/service"
	appErrors "github.com/learningflow/api/pkg/errors"
	"github.com/learningflow/api/pkg/response"
)

// GradingHandler scores submitted quiz answers.
type GradingHandler struct {
	service *service.GradingService
}

// NewGradingHandler creates a new handler.
func NewGradingHandler(svc *service.GradingService) *GradingHandler {
	return &GradingHandler{service: svc}
}

// Feedback godoc
// @Summary Grade a quiz answer
// @Description Compare the submitted answer against the correct one and return a verdict with feedback
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body dto.FeedbackRequest true "Answer to grade"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} response.Envelope
// @Router /feedback [post]
func (h *GradingHandler) Feedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	verdict := h.service.Grade(c.Request.Context(), req)
	c.JSON(http.StatusOK, verdict)
}
