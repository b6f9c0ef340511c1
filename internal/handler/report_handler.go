package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/service"
	appErrors "github.com/learningflow/api/pkg/errors"
	"github.com/learningflow/api/pkg/response"
)

// ReportHandler renders study reports as downloadable PDFs.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Generate godoc
// @Summary Download a study report
// @Description Render the provided study outcome into a PDF attachment
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Param payload body dto.StudyReport true "Study outcome"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /pdf [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	var report dto.StudyReport
	if err := c.ShouldBindJSON(&report); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	data, filename, err := h.service.Build(report)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
