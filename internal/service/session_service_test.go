package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/models"
	appErrors "github.com/learningflow/api/pkg/errors"
)

type mockSessionRepo struct {
	sessions map[string]*models.LearningSession
	created  []*models.LearningSession
	deleted  []string
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*models.LearningSession)}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.LearningSession) error {
	if session.ID == "" {
		session.ID = "generated"
	}
	m.sessions[session.ID] = session
	m.created = append(m.created, session)
	return nil
}

func (m *mockSessionRepo) FindOwned(ctx context.Context, id, userID string, isWrong bool) (*models.LearningSession, error) {
	session, ok := m.sessions[id]
	if !ok || session.UserID == nil || *session.UserID != userID || session.IsWrong != isWrong {
		return nil, sql.ErrNoRows
	}
	return session, nil
}

func (m *mockSessionRepo) LatestUpload(ctx context.Context, userID string) (*models.LearningSession, error) {
	for _, session := range m.sessions {
		if session.UserID != nil && *session.UserID == userID && !session.IsWrong {
			return session, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSessionRepo) ListByUser(ctx context.Context, userID string, isWrong bool) ([]models.LearningSession, error) {
	var out []models.LearningSession
	for _, session := range m.sessions {
		if session.UserID != nil && *session.UserID == userID && session.IsWrong == isWrong {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) SaveStudyData(ctx context.Context, id string, summary, quiz, wrongNotes *string) error {
	session, ok := m.sessions[id]
	if !ok {
		return sql.ErrNoRows
	}
	session.SummaryData = summary
	session.QuizData = quiz
	session.WrongNotesData = wrongNotes
	session.IsSaved = true
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func uploadSessionFor(userID, id string) *models.LearningSession {
	return &models.LearningSession{
		ID:               id,
		UserID:           &userID,
		CustomFilename:   "notes",
		OriginalFilename: "notes.pdf",
		FilePath:         id + ".pdf",
		FileSize:         512,
		FileType:         "pdf",
	}
}

func newSessionFixture() (*SessionService, *mockSessionRepo, *mockStore) {
	repo := newMockSessionRepo()
	store := newMockStore()
	svc := NewSessionService(repo, store, validator.New(), zap.NewNop())
	return svc, repo, store
}

func TestSaveWrongNoteClonesUploadDescriptors(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.sessions["s1"] = uploadSessionFor("u1", "s1")

	note, err := svc.SaveWrongNote(context.Background(), "u1", dto.SaveWrongNoteRequest{
		SessionID:     "s1",
		Question:      "2+2?",
		UserAnswer:    "5",
		CorrectAnswer: "4",
	})
	require.NoError(t, err)
	assert.True(t, note.IsWrong)
	assert.Equal(t, "notes", note.CustomFilename)
	assert.Equal(t, "s1.pdf", note.FilePath)
	require.NotNil(t, note.Question)
	assert.Equal(t, "2+2?", *note.Question)
}

func TestSaveWrongNoteFallsBackToLatestUpload(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.sessions["s1"] = uploadSessionFor("u1", "s1")

	note, err := svc.SaveWrongNote(context.Background(), "u1", dto.SaveWrongNoteRequest{
		Question:      "q",
		CorrectAnswer: "a",
	})
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", note.OriginalFilename)
}

func TestSaveWrongNoteRejectsForeignSession(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.sessions["s1"] = uploadSessionFor("owner", "s1")

	_, err := svc.SaveWrongNote(context.Background(), "intruder", dto.SaveWrongNoteRequest{
		SessionID:     "s1",
		Question:      "q",
		CorrectAnswer: "a",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSaveStudyOverwritesBlobs(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.sessions["s1"] = uploadSessionFor("u1", "s1")

	first := dto.SaveStudyRequest{SessionID: "s1", SummaryData: []byte(`{"v":1}`)}
	require.NoError(t, svc.SaveStudy(context.Background(), "u1", first))

	second := dto.SaveStudyRequest{SessionID: "s1", SummaryData: []byte(`{"v":2}`)}
	require.NoError(t, svc.SaveStudy(context.Background(), "u1", second))

	session := repo.sessions["s1"]
	assert.True(t, session.IsSaved)
	require.NotNil(t, session.SummaryData)
	assert.Equal(t, `{"v":2}`, *session.SummaryData)
}

func TestSaveStudyUnknownSession(t *testing.T) {
	svc, _, _ := newSessionFixture()

	err := svc.SaveStudy(context.Background(), "u1", dto.SaveStudyRequest{SessionID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListWrongNotesEmpty(t *testing.T) {
	svc, _, _ := newSessionFixture()

	notes, err := svc.ListWrongNotes(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestDeleteFileRemovesRowAndStoredFile(t *testing.T) {
	svc, repo, store := newSessionFixture()
	repo.sessions["s1"] = uploadSessionFor("u1", "s1")

	require.NoError(t, svc.DeleteFile(context.Background(), "u1", "s1"))
	assert.Contains(t, repo.deleted, "s1")
	assert.Contains(t, store.deleted, "s1.pdf")
}

func TestDeleteFileForeignSession(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.sessions["s1"] = uploadSessionFor("owner", "s1")

	err := svc.DeleteFile(context.Background(), "intruder", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
