package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/learningflow/api/internal/models"
)

const sessionColumns = `id, user_id, custom_filename, original_filename, file_path, file_size, file_type, category, question, user_answer, correct_answer, explanation, is_wrong, summary_data, quiz_data, wrong_notes_data, is_saved, created_at`

// SessionRepository provides database access for learning sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new learning session row.
func (r *SessionRepository) Create(ctx context.Context, session *models.LearningSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO learning_sessions (` + sessionColumns + `) VALUES (:id, :user_id, :custom_filename, :original_filename, :file_path, :file_size, :file_type, :category, :question, :user_answer, :correct_answer, :explanation, :is_wrong, :summary_data, :quiz_data, :wrong_notes_data, :is_saved, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create learning session: %w", err)
	}
	return nil
}

// FindOwned returns a session by id scoped to its owner and wrong-note flag.
func (r *SessionRepository) FindOwned(ctx context.Context, id, userID string, isWrong bool) (*models.LearningSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM learning_sessions WHERE id = $1 AND user_id = $2 AND is_wrong = $3 LIMIT 1`
	var session models.LearningSession
	if err := r.db.GetContext(ctx, &session, query, id, userID, isWrong); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find learning session: %w", err)
	}
	return &session, nil
}

// LatestUpload returns the most recent upload session for a user.
func (r *SessionRepository) LatestUpload(ctx context.Context, userID string) (*models.LearningSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM learning_sessions WHERE user_id = $1 AND is_wrong = FALSE ORDER BY created_at DESC LIMIT 1`
	var session models.LearningSession
	if err := r.db.GetContext(ctx, &session, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find latest upload session: %w", err)
	}
	return &session, nil
}

// ListByUser returns sessions for a user filtered by the wrong-note flag,
// newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string, isWrong bool) ([]models.LearningSession, error) {
	const query = `SELECT ` + sessionColumns + ` FROM learning_sessions WHERE user_id = $1 AND is_wrong = $2 ORDER BY created_at DESC`
	var sessions []models.LearningSession
	if err := r.db.SelectContext(ctx, &sessions, query, userID, isWrong); err != nil {
		return nil, fmt.Errorf("list learning sessions: %w", err)
	}
	return sessions, nil
}

// SaveStudyData stores the serialized study blobs and marks the session saved.
// Repeated saves overwrite the previous blobs in place.
func (r *SessionRepository) SaveStudyData(ctx context.Context, id string, summary, quiz, wrongNotes *string) error {
	const query = `UPDATE learning_sessions SET summary_data = $2, quiz_data = $3, wrong_notes_data = $4, is_saved = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, summary, quiz, wrongNotes); err != nil {
		return fmt.Errorf("save study data: %w", err)
	}
	return nil
}

// Delete removes a session row.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM learning_sessions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete learning session: %w", err)
	}
	return nil
}
