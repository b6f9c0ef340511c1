package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learningflow/api/internal/models"
)

func sessionRows(id, userID string, isWrong bool, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "custom_filename", "original_filename", "file_path",
		"file_size", "file_type", "category", "question", "user_answer",
		"correct_answer", "explanation", "is_wrong", "summary_data",
		"quiz_data", "wrong_notes_data", "is_saved", "created_at",
	}).AddRow(id, userID, "notes", "notes.pdf", "/uploads/"+id+".pdf",
		1024, "pdf", nil, nil, nil, nil, nil, isWrong, nil, nil, nil, false, now)
}

func TestSessionCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("INSERT INTO learning_sessions").WillReturnResult(sqlmock.NewResult(1, 1))

	userID := "u1"
	session := &models.LearningSession{UserID: &userID, CustomFilename: "notes", OriginalFilename: "notes.pdf"}
	err := repo.Create(context.Background(), session)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFindOwned(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM learning_sessions WHERE id =").
		WithArgs("s1", "u1", false).
		WillReturnRows(sessionRows("s1", "u1", false, time.Now()))

	session, err := repo.FindOwned(context.Background(), "s1", "u1", false)
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
	assert.False(t, session.IsWrong)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFindOwnedMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM learning_sessions WHERE id =").
		WithArgs("s1", "other", false).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindOwned(context.Background(), "s1", "other", false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionListByUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM learning_sessions WHERE user_id =").
		WithArgs("u1", true).
		WillReturnRows(sessionRows("s2", "u1", true, time.Now()))

	sessions, err := repo.ListByUser(context.Background(), "u1", true)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].IsWrong)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionSaveStudyData(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	summary := `{"fullSummary":[]}`
	quiz := `{"questions":[]}`
	mock.ExpectExec("UPDATE learning_sessions SET summary_data =").
		WithArgs("s1", summary, quiz, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveStudyData(context.Background(), "s1", &summary, &quiz, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("DELETE FROM learning_sessions").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "s1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
