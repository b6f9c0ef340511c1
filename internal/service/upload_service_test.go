package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/models"
	"github.com/learningflow/api/pkg/config"
	appErrors "github.com/learningflow/api/pkg/errors"
)

type mockUploadRepo struct {
	created []*models.LearningSession
	err     error
}

func (m *mockUploadRepo) Create(ctx context.Context, session *models.LearningSession) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, session)
	return nil
}

type mockStore struct {
	saved   map[string][]byte
	deleted []string
}

func newMockStore() *mockStore {
	return &mockStore{saved: make(map[string][]byte)}
}

func (m *mockStore) Save(filename string, data []byte) (string, error) {
	m.saved[filename] = data
	return filename, nil
}

func (m *mockStore) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

type mockGenerator struct {
	material       *models.StudyMaterial
	generatedFrom  []string
	translated     string
	translateErr   error
	translateCalls int
}

func (m *mockGenerator) Generate(ctx context.Context, text string, quizCount int, quizType models.QuizType) (*models.StudyMaterial, error) {
	m.generatedFrom = append(m.generatedFrom, text)
	if m.material != nil {
		return m.material, nil
	}
	return mockMaterial(quizCount, quizType), nil
}

func (m *mockGenerator) Translate(ctx context.Context, text string) (string, error) {
	m.translateCalls++
	if m.translateErr != nil {
		return "", m.translateErr
	}
	return m.translated, nil
}

func testUploadConfig() config.UploadsConfig {
	return config.UploadsConfig{
		MaxFileSizeBytes:  1024 * 1024,
		TranslateCategory: "English",
	}
}

func newUploadFixture() (*UploadService, *mockUploadRepo, *mockStore, *mockGenerator) {
	repo := &mockUploadRepo{}
	store := newMockStore()
	gen := &mockGenerator{}
	svc := NewUploadService(repo, store, gen, zap.NewNop(), testUploadConfig())
	return svc, repo, store, gen
}

func TestProcessRejectsUnsupportedExtension(t *testing.T) {
	svc, _, _, _ := newUploadFixture()

	_, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("hello"),
		OriginalFilename: "notes.docx",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFile.Code, appErrors.FromError(err).Code)
}

func TestProcessRejectsOversizedFile(t *testing.T) {
	svc, _, _, _ := newUploadFixture()

	_, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             make([]byte, 2*1024*1024),
		OriginalFilename: "notes.txt",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestProcessRejectsEmptyDocument(t *testing.T) {
	svc, _, store, _ := newUploadFixture()

	_, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("   \n\t "),
		OriginalFilename: "blank.txt",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyDocument.Code, appErrors.FromError(err).Code)
	assert.Len(t, store.deleted, 1)
}

func TestProcessAnonymousTextUpload(t *testing.T) {
	svc, repo, store, _ := newUploadFixture()

	result, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("the mitochondria is the powerhouse of the cell"),
		OriginalFilename: "biology.txt",
	})
	require.NoError(t, err)

	assert.Nil(t, result.SessionID)
	assert.Nil(t, result.PDFURL)
	assert.Contains(t, result.PDFText, "mitochondria")
	assert.Empty(t, repo.created)

	require.Len(t, store.saved, 1)
	for name := range store.saved {
		assert.True(t, strings.HasPrefix(name, "anon-"))
	}
	// Text files are removed once extracted.
	assert.Len(t, store.deleted, 1)
}

func TestProcessAuthenticatedUploadCreatesSession(t *testing.T) {
	svc, repo, store, _ := newUploadFixture()

	userID := "u1"
	result, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("some study content"),
		OriginalFilename: "lecture.txt",
		CustomFilename:   "Week 3 Lecture",
		UserID:           &userID,
	})
	require.NoError(t, err)

	require.NotNil(t, result.SessionID)
	require.Len(t, repo.created, 1)
	session := repo.created[0]
	assert.Equal(t, *result.SessionID, session.ID)
	assert.Equal(t, "Week 3 Lecture", session.CustomFilename)
	assert.Equal(t, "lecture.txt", session.OriginalFilename)
	assert.Equal(t, "txt", session.FileType)

	for name := range store.saved {
		assert.False(t, strings.HasPrefix(name, "anon-"))
		assert.True(t, strings.HasPrefix(name, session.ID))
	}
}

func TestProcessTranslatesMatchingCategory(t *testing.T) {
	svc, _, _, gen := newUploadFixture()
	gen.translated = "번역된 본문"

	result, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("the quick brown fox"),
		OriginalFilename: "reading.txt",
		Category:         "english",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, gen.translateCalls)
	require.NotNil(t, result.TranslatedText)
	assert.Equal(t, "번역된 본문", *result.TranslatedText)

	// The study material is built from the translated text, not the source.
	require.Len(t, gen.generatedFrom, 1)
	assert.Equal(t, "번역된 본문", gen.generatedFrom[0])
}

func TestProcessSkipsTranslationForOtherCategories(t *testing.T) {
	svc, _, _, gen := newUploadFixture()

	result, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("content"),
		OriginalFilename: "math.txt",
		Category:         "Math",
	})
	require.NoError(t, err)
	assert.Zero(t, gen.translateCalls)
	assert.Nil(t, result.TranslatedText)
}

func TestProcessContinuesWhenTranslationFails(t *testing.T) {
	svc, _, _, gen := newUploadFixture()
	gen.translateErr = assert.AnError

	result, err := svc.Process(context.Background(), dto.UploadInput{
		Data:             []byte("the quick brown fox"),
		OriginalFilename: "reading.txt",
		Category:         "English",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.FullSummary)

	// Failed translation falls back to the original text, both in the
	// response field and in what generation consumes.
	require.NotNil(t, result.TranslatedText)
	assert.Equal(t, "the quick brown fox", *result.TranslatedText)
	require.Len(t, gen.generatedFrom, 1)
	assert.Equal(t, "the quick brown fox", gen.generatedFrom[0])
}
