package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	appErrors "github.com/learningflow/api/pkg/errors"
)

type reportRenderer interface {
	Render(report dto.StudyReport) ([]byte, error)
}

// ReportService turns a study outcome into a downloadable PDF report.
type ReportService struct {
	renderer reportRenderer
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(renderer reportRenderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{renderer: renderer, logger: logger}
}

// Build renders the report and returns the bytes plus a download filename.
func (s *ReportService) Build(report dto.StudyReport) ([]byte, string, error) {
	data, err := s.renderer.Render(report)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render the report")
	}
	filename := fmt.Sprintf("learning_report_%s.pdf", time.Now().Format("20060102_150405"))
	return data, filename, nil
}
