package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/models"
	appErrors "github.com/learningflow/api/pkg/errors"
)

type mockLLM struct {
	reply      string
	err        error
	configured bool
	prompts    []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLM) Configured() bool { return m.configured }

type memoryCache struct {
	values map[string][]byte
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, 3, tierFor(100).Sections)
	assert.Equal(t, 5, tierFor(2000).Sections)
	assert.Equal(t, 7, tierFor(5000).Sections)
	assert.Equal(t, 10, tierFor(50000).Sections)
	assert.Equal(t, 30000, tierFor(50000).MaxChars)
}

func TestGenerateMockMode(t *testing.T) {
	svc := NewContentService(nil, nil, zap.NewNop(), time.Minute)
	require.True(t, svc.MockMode())

	material, err := svc.Generate(context.Background(), "some text", 3, models.QuizObjective)
	require.NoError(t, err)
	assert.NotEmpty(t, material.FullSummary)
	assert.NotEmpty(t, material.Keywords)
	require.Len(t, material.QuizData.Questions, 3)
	assert.Len(t, material.QuizData.Questions[0].Options, 4)
}

func TestGenerateMockModeUnconfiguredClient(t *testing.T) {
	svc := NewContentService(&mockLLM{configured: false}, nil, zap.NewNop(), time.Minute)
	assert.True(t, svc.MockMode())
}

func TestGenerateParsesFencedReply(t *testing.T) {
	reply := "Here you go:\n```json\n" + `{
		"fullSummary": [{"mainTitle": "Intro", "content": ["line one"]}],
		"structuredSummary": [{"title": "Concept", "content": "desc"}],
		"keywords": ["alpha"],
		"expectedQuestions": [{"question": "q", "answer": "a"}],
		"quizData": {"questions": [{"id": 7, "question": "pick one", "options": ["a","b","c","d"], "answer": "a"}]}
	}` + "\n```"
	client := &mockLLM{reply: reply, configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	material, err := svc.Generate(context.Background(), "document text", 1, models.QuizObjective)
	require.NoError(t, err)
	require.Len(t, material.FullSummary, 1)
	assert.Equal(t, "Intro", material.FullSummary[0].MainTitle)
	require.Len(t, material.QuizData.Questions, 1)
	assert.Equal(t, 1, material.QuizData.Questions[0].ID)
}

func TestGenerateFallsBackOnModelError(t *testing.T) {
	client := &mockLLM{err: errors.New("boom"), configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	material, err := svc.Generate(context.Background(), "document text", 2, models.QuizTrueFalse)
	require.NoError(t, err)
	require.Len(t, material.QuizData.Questions, 2)
	assert.Equal(t, models.TrueFalseOptions, material.QuizData.Questions[0].Options)
}

func TestGenerateUsesCache(t *testing.T) {
	reply := `{"fullSummary": [{"mainTitle": "Intro", "content": ["x"]}], "structuredSummary": [], "keywords": [], "expectedQuestions": [], "quizData": {"questions": []}}`
	client := &mockLLM{reply: reply, configured: true}
	cache := newMemoryCache()
	svc := NewContentService(client, cache, zap.NewNop(), time.Minute)

	_, err := svc.Generate(context.Background(), "document text", 1, models.QuizObjective)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), "document text", 1, models.QuizObjective)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assert.Len(t, client.prompts, 1)
}

func TestGenerateQuizShortAnswers(t *testing.T) {
	reply := `{"questions": [{"id": 1, "question": "define x", "options": ["stale"], "answer": "x is y"}]}`
	client := &mockLLM{reply: reply, configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	quiz, err := svc.GenerateQuiz(context.Background(), dto.GenerateQuizRequest{Text: "text", QuizCount: 1, QuizType: "short"})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Empty(t, quiz.Questions[0].Options)
}

func TestGenerateQuizDropsOptionlessQuestions(t *testing.T) {
	reply := `{"questions": [
		{"id": 1, "question": "no choices came back", "options": [], "answer": "a"},
		{"id": 2, "question": "pick one", "options": ["a","b","c","d"], "answer": "a"}
	]}`
	client := &mockLLM{reply: reply, configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	quiz, err := svc.GenerateQuiz(context.Background(), dto.GenerateQuizRequest{Text: "text", QuizCount: 2, QuizType: "objective"})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 1, quiz.Questions[0].ID)
	assert.Equal(t, "pick one", quiz.Questions[0].Question)
	assert.Len(t, quiz.Questions[0].Options, 4)
}

func TestGenerateQuizRequiresText(t *testing.T) {
	svc := NewContentService(nil, nil, zap.NewNop(), time.Minute)

	_, err := svc.GenerateQuiz(context.Background(), dto.GenerateQuizRequest{Text: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestChatStripsMarkdown(t *testing.T) {
	client := &mockLLM{reply: "## Answer\n**Photosynthesis** converts light.", configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	answer, err := svc.Chat(context.Background(), "what is photosynthesis?", "doc")
	require.NoError(t, err)
	assert.NotContains(t, answer, "**")
	assert.NotContains(t, answer, "##")
	assert.Contains(t, answer, "Photosynthesis")
}

func TestExplainFallsBackOnBadReply(t *testing.T) {
	client := &mockLLM{reply: "not json at all", configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	explanation := svc.Explain(context.Background(), "quantum entanglement is a correlation between particles")
	assert.NotEmpty(t, explanation.Summary)
	assert.NotEmpty(t, explanation.EasyExplanation)
}

func TestExplainParsesReply(t *testing.T) {
	client := &mockLLM{reply: `{"summary": "s", "easy_explanation": "e", "example": "x"}`, configured: true}
	svc := NewContentService(client, nil, zap.NewNop(), time.Minute)

	explanation := svc.Explain(context.Background(), "some passage")
	assert.Equal(t, "s", explanation.Summary)
	assert.Equal(t, "x", explanation.Example)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("prefix {\"a\":1} suffix"))
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
}
