package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/extract"
	"github.com/learningflow/api/internal/models"
	"github.com/learningflow/api/pkg/config"
	appErrors "github.com/learningflow/api/pkg/errors"
)

// anonymousPrefix marks stored files that belong to no account; the cleanup
// job sweeps them once their TTL expires.
const anonymousPrefix = "anon-"

type uploadContentGenerator interface {
	Generate(ctx context.Context, text string, quizCount int, quizType models.QuizType) (*models.StudyMaterial, error)
	Translate(ctx context.Context, text string) (string, error)
}

type uploadSessionRepository interface {
	Create(ctx context.Context, session *models.LearningSession) error
}

type uploadStore interface {
	Save(filename string, data []byte) (string, error)
	Delete(filename string) error
}

// UploadService runs the document intake pipeline: store, extract, optionally
// translate, generate study material and persist the session for signed-in
// users.
type UploadService struct {
	repo    uploadSessionRepository
	store   uploadStore
	content uploadContentGenerator
	logger  *zap.Logger
	config  config.UploadsConfig
}

// NewUploadService constructs an UploadService.
func NewUploadService(repo uploadSessionRepository, store uploadStore, content uploadContentGenerator, logger *zap.Logger, cfg config.UploadsConfig) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{repo: repo, store: store, content: content, logger: logger, config: cfg}
}

// Process handles one uploaded document end to end.
func (s *UploadService) Process(ctx context.Context, input dto.UploadInput) (*dto.UploadResult, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.OriginalFilename)), ".")
	kind, ok := extract.KindFromExtension(ext)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFile, "")
	}
	if s.config.MaxFileSizeBytes > 0 && int64(len(input.Data)) > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.config.MaxFileSizeBytes))
	}
	if len(input.Data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}

	// The stored name is assigned server-side so concurrent uploads of
	// identically named files never collide.
	sessionID := uuid.NewString()
	storedName := sessionID + "." + ext
	if input.UserID == nil {
		storedName = anonymousPrefix + uuid.NewString() + "." + ext
	}

	if _, err := s.store.Save(storedName, input.Data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store the file")
	}

	text, err := extract.Extract(input.Data, kind)
	if err != nil {
		s.discard(storedName)
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		s.discard(storedName)
		return nil, appErrors.Clone(appErrors.ErrEmptyDocument, "")
	}

	var translated *string
	if s.shouldTranslate(input.Category) {
		rendered, terr := s.content.Translate(ctx, text)
		if terr != nil || strings.TrimSpace(rendered) == "" {
			s.logger.Warn("translation failed, continuing with the original text", zap.Error(terr))
			rendered = text
		}
		translated = &rendered
	}

	// Study material is generated from the translated text when the category
	// requested translation.
	sourceText := text
	if translated != nil {
		sourceText = *translated
	}

	material, err := s.content.Generate(ctx, sourceText, defaultQuizCount, models.QuizObjective)
	if err != nil {
		s.discard(storedName)
		return nil, err
	}

	result := &dto.UploadResult{
		StudyMaterial:  *material,
		TranslatedText: translated,
		PDFText:        text,
	}
	if kind == extract.KindPDF {
		url := "/uploads/" + storedName
		result.PDFURL = &url
	}

	if input.UserID != nil {
		session := &models.LearningSession{
			ID:               sessionID,
			UserID:           input.UserID,
			CustomFilename:   s.displayName(input),
			OriginalFilename: input.OriginalFilename,
			FilePath:         storedName,
			FileSize:         int64(len(input.Data)),
			FileType:         string(kind),
		}
		if input.Category != "" {
			category := input.Category
			session.Category = &category
		}
		if err := s.repo.Create(ctx, session); err != nil {
			s.discard(storedName)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record the session")
		}
		result.SessionID = &session.ID
	}

	// Only PDFs stay on disk for later viewing; plain text files have served
	// their purpose once extracted.
	if kind != extract.KindPDF {
		s.discard(storedName)
	}

	return result, nil
}

func (s *UploadService) shouldTranslate(category string) bool {
	target := s.config.TranslateCategory
	return target != "" && strings.EqualFold(strings.TrimSpace(category), target)
}

func (s *UploadService) displayName(input dto.UploadInput) string {
	if name := strings.TrimSpace(input.CustomFilename); name != "" {
		return name
	}
	base := filepath.Base(input.OriginalFilename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *UploadService) discard(storedName string) {
	if err := s.store.Delete(storedName); err != nil {
		s.logger.Warn("failed to remove stored file", zap.String("file", storedName), zap.Error(err))
	}
}
