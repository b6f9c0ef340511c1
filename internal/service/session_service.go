package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/models"
	appErrors "github.com/learningflow/api/pkg/errors"
)

type sessionRepository interface {
	Create(ctx context.Context, session *models.LearningSession) error
	FindOwned(ctx context.Context, id, userID string, isWrong bool) (*models.LearningSession, error)
	LatestUpload(ctx context.Context, userID string) (*models.LearningSession, error)
	ListByUser(ctx context.Context, userID string, isWrong bool) ([]models.LearningSession, error)
	SaveStudyData(ctx context.Context, id string, summary, quiz, wrongNotes *string) error
	Delete(ctx context.Context, id string) error
}

type sessionFileStore interface {
	Delete(filename string) error
}

// SessionService manages a user's learning sessions: wrong-answer notes,
// saved study outcomes and the uploaded-files overview.
type SessionService struct {
	repo      sessionRepository
	store     sessionFileStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, store sessionFileStore, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{repo: repo, store: store, validator: validate, logger: logger}
}

// SaveWrongNote records one wrong answer as its own session row, cloning the
// file descriptors of the upload it belongs to. When no session id is given
// the note attaches to the user's most recent upload.
func (s *SessionService) SaveWrongNote(ctx context.Context, userID string, req dto.SaveWrongNoteRequest) (*models.LearningSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid wrong note payload")
	}

	var base *models.LearningSession
	var err error
	if req.SessionID != "" {
		base, err = s.repo.FindOwned(ctx, req.SessionID, userID, false)
	} else {
		base, err = s.repo.LatestUpload(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no upload session to attach the note to")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load the upload session")
	}

	note := &models.LearningSession{
		UserID:           &userID,
		CustomFilename:   base.CustomFilename,
		OriginalFilename: base.OriginalFilename,
		FilePath:         base.FilePath,
		FileSize:         base.FileSize,
		FileType:         base.FileType,
		Category:         base.Category,
		Question:         &req.Question,
		CorrectAnswer:    &req.CorrectAnswer,
		IsWrong:          true,
	}
	if req.UserAnswer != "" {
		note.UserAnswer = &req.UserAnswer
	}
	if req.Explanation != "" {
		note.Explanation = &req.Explanation
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save the wrong note")
	}
	return note, nil
}

// ListWrongNotes returns the user's wrong-answer notes, newest first.
func (s *SessionService) ListWrongNotes(ctx context.Context, userID string) ([]models.LearningSession, error) {
	notes, err := s.repo.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list wrong notes")
	}
	if notes == nil {
		notes = []models.LearningSession{}
	}
	return notes, nil
}

// SaveStudy stores the study outcome blobs on the upload session. A repeated
// save for the same session overwrites the previous blobs.
func (s *SessionService) SaveStudy(ctx context.Context, userID string, req dto.SaveStudyRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid study payload")
	}

	if _, err := s.repo.FindOwned(ctx, req.SessionID, userID, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load the session")
	}

	if err := s.repo.SaveStudyData(ctx, req.SessionID, rawToString(req.SummaryData), rawToString(req.QuizData), rawToString(req.WrongNotes)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save study data")
	}
	return nil
}

// ListFiles returns the user's upload sessions, newest first.
func (s *SessionService) ListFiles(ctx context.Context, userID string) ([]models.LearningSession, error) {
	files, err := s.repo.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list files")
	}
	if files == nil {
		files = []models.LearningSession{}
	}
	return files, nil
}

// DeleteFile removes an upload session and its stored document.
func (s *SessionService) DeleteFile(ctx context.Context, userID, sessionID string) error {
	session, err := s.repo.FindOwned(ctx, sessionID, userID, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load the session")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete the session")
	}

	if session.FilePath != "" {
		if err := s.store.Delete(session.FilePath); err != nil {
			s.logger.Warn("failed to remove stored file", zap.String("file", session.FilePath), zap.Error(err))
		}
	}
	return nil
}

func rawToString(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}
	value := string(raw)
	if value == "null" {
		return nil
	}
	return &value
}
