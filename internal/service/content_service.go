package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/llm"
	"github.com/learningflow/api/internal/models"
	appErrors "github.com/learningflow/api/pkg/errors"
)

const (
	defaultQuizCount = 5
	maxQuizCount     = 20
)

// detailTier controls how much of the document feeds the prompt and how deep
// the requested summary goes. Longer documents earn more sections and a larger
// excerpt.
type detailTier struct {
	Sections int
	Style    string
	MaxChars int
}

func tierFor(runeCount int) detailTier {
	switch {
	case runeCount < 2000:
		return detailTier{Sections: 3, Style: "concise", MaxChars: 4000}
	case runeCount < 5000:
		return detailTier{Sections: 5, Style: "detailed", MaxChars: 8000}
	case runeCount < 10000:
		return detailTier{Sections: 7, Style: "comprehensive", MaxChars: 15000}
	default:
		return detailTier{Sections: 10, Style: "exhaustive", MaxChars: 30000}
	}
}

type generationCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ContentService generates study material, quizzes, chat answers and
// explanations from document text. When no model credential is configured it
// serves deterministic sample material so the rest of the product keeps
// working; that decision is made once, at construction.
type ContentService struct {
	llm      llm.Client
	cache    generationCache
	logger   *zap.Logger
	cacheTTL time.Duration
	mock     bool
}

// NewContentService constructs a ContentService. cache may be nil.
func NewContentService(client llm.Client, cache generationCache, logger *zap.Logger, cacheTTL time.Duration) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	mock := client == nil || !client.Configured()
	if mock {
		logger.Warn("no LLM credential configured, content generation runs in mock mode")
	}
	return &ContentService{
		llm:      client,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
		mock:     mock,
	}
}

// MockMode reports whether generation serves deterministic sample material.
func (s *ContentService) MockMode() bool {
	return s.mock
}

// Generate produces the full study material bundle for a document.
func (s *ContentService) Generate(ctx context.Context, text string, quizCount int, quizType models.QuizType) (*models.StudyMaterial, error) {
	quizCount = clampQuizCount(quizCount)
	if !quizType.Valid() {
		quizType = models.QuizObjective
	}

	runes := []rune(text)
	tier := tierFor(len(runes))
	excerpt := text
	if len(runes) > tier.MaxChars {
		excerpt = string(runes[:tier.MaxChars])
	}

	if s.mock {
		return mockMaterial(quizCount, quizType), nil
	}

	key := generationKey("material", excerpt, quizCount, quizType)
	if s.cache != nil {
		var cached models.StudyMaterial
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	prompt := buildMaterialPrompt(excerpt, tier, quizCount, quizType)
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("study material generation failed, serving sample material", zap.Error(err))
		return mockMaterial(quizCount, quizType), nil
	}

	material, err := parseMaterial(raw)
	if err != nil {
		s.logger.Warn("study material parse failed, serving sample material", zap.Error(err))
		return mockMaterial(quizCount, quizType), nil
	}
	normalizeQuiz(&material.QuizData, quizType)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, material, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache study material", zap.Error(err))
		}
	}

	return material, nil
}

// GenerateQuiz produces a standalone quiz over already-extracted text.
func (s *ContentService) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*models.QuizData, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "text is required")
	}
	count := clampQuizCount(req.QuizCount)
	quizType := models.QuizType(req.QuizType)
	if !quizType.Valid() {
		quizType = models.QuizObjective
	}

	runes := []rune(req.Text)
	tier := tierFor(len(runes))
	excerpt := req.Text
	if len(runes) > tier.MaxChars {
		excerpt = string(runes[:tier.MaxChars])
	}

	if s.mock {
		quiz := mockQuiz(count, quizType)
		return &quiz, nil
	}

	key := generationKey("quiz", excerpt, count, quizType)
	if s.cache != nil {
		var cached models.QuizData
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	prompt := buildQuizPrompt(excerpt, count, quizType)
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("quiz generation failed, serving sample quiz", zap.Error(err))
		quiz := mockQuiz(count, quizType)
		return &quiz, nil
	}

	var quiz models.QuizData
	if err := unmarshalFenced(raw, &quiz); err != nil {
		s.logger.Warn("quiz parse failed, serving sample quiz", zap.Error(err))
		fallback := mockQuiz(count, quizType)
		return &fallback, nil
	}
	normalizeQuiz(&quiz, quizType)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, quiz, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache quiz", zap.Error(err))
		}
	}

	return &quiz, nil
}

// Chat answers a free-form question grounded on the provided document text.
// Markdown emphasis markers are stripped so the client can render plain text.
func (s *ContentService) Chat(ctx context.Context, question, docText string) (string, error) {
	if s.mock {
		return "The assistant is running without a model credential, so answers are unavailable. Please configure an API key.", nil
	}

	prompt := buildChatPrompt(question, docText)
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to answer the question")
	}

	return stripMarkdown(raw), nil
}

// Explain returns a beginner-level explanation of a text fragment. Model or
// parse failures degrade to a canned explanation rather than an error.
func (s *ContentService) Explain(ctx context.Context, text string) dto.Explanation {
	fallback := dto.Explanation{
		Summary:         firstRunes(text, 100),
		EasyExplanation: "This passage could not be analyzed automatically. Try reading it sentence by sentence and look up any unfamiliar terms.",
		Example:         "",
	}

	if s.mock {
		return fallback
	}

	raw, err := s.llm.Generate(ctx, buildExplainPrompt(text))
	if err != nil {
		s.logger.Warn("explanation generation failed, serving fallback", zap.Error(err))
		return fallback
	}

	var explanation dto.Explanation
	if err := unmarshalFenced(raw, &explanation); err != nil {
		s.logger.Warn("explanation parse failed, serving fallback", zap.Error(err))
		return fallback
	}
	if explanation.Summary == "" {
		explanation.Summary = fallback.Summary
	}
	return explanation
}

// Translate renders the document text into Korean. Used for uploads whose
// category requests translation.
func (s *ContentService) Translate(ctx context.Context, text string) (string, error) {
	if s.mock {
		return "", llm.ErrNotConfigured
	}

	runes := []rune(text)
	tier := tierFor(len(runes))
	excerpt := text
	if len(runes) > tier.MaxChars {
		excerpt = string(runes[:tier.MaxChars])
	}

	prompt := "Translate the following text into natural Korean. Return only the translation, no preamble.\n\n" + excerpt
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

func clampQuizCount(count int) int {
	if count <= 0 {
		return defaultQuizCount
	}
	if count > maxQuizCount {
		return maxQuizCount
	}
	return count
}

func generationKey(kind, excerpt string, count int, quizType models.QuizType) string {
	sum := sha256.Sum256([]byte(excerpt))
	return fmt.Sprintf("gen:%s:%s:%d:%s", kind, hex.EncodeToString(sum[:]), count, quizType)
}

func buildMaterialPrompt(excerpt string, tier detailTier, quizCount int, quizType models.QuizType) string {
	var b strings.Builder
	b.WriteString("You are a study assistant. Read the document below and produce learning material as a single JSON object with exactly these keys:\n")
	fmt.Fprintf(&b, "- \"fullSummary\": array of %d sections, each {\"mainTitle\": string, \"content\": array of strings}. Make it %s.\n", tier.Sections, tier.Style)
	b.WriteString("- \"structuredSummary\": array of {\"title\": string, \"content\": string} covering the core concepts.\n")
	b.WriteString("- \"keywords\": array of the most important terms.\n")
	b.WriteString("- \"expectedQuestions\": array of {\"question\": string, \"answer\": string} likely to appear in an exam.\n")
	fmt.Fprintf(&b, "- \"quizData\": {\"questions\": array of %d items}, each {\"id\": number, \"question\": string, \"options\": array of strings, \"answer\": string}.\n", quizCount)
	writeQuizTypeRule(&b, quizType)
	b.WriteString("Respond with the JSON object only.\n\nDocument:\n")
	b.WriteString(excerpt)
	return b.String()
}

func buildQuizPrompt(excerpt string, count int, quizType models.QuizType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d quiz questions from the document below. Respond with a single JSON object {\"questions\": [...]} where each item is {\"id\": number, \"question\": string, \"options\": array of strings, \"answer\": string}.\n", count)
	writeQuizTypeRule(&b, quizType)
	b.WriteString("Respond with the JSON object only.\n\nDocument:\n")
	b.WriteString(excerpt)
	return b.String()
}

func writeQuizTypeRule(b *strings.Builder, quizType models.QuizType) {
	switch quizType {
	case models.QuizTrueFalse:
		b.WriteString("Every question is true/false: options must be exactly [\"O\", \"X\"] and answer must be \"O\" or \"X\".\n")
	case models.QuizShort:
		b.WriteString("Every question is short-answer: options must be an empty array and answer is the expected word or phrase.\n")
	default:
		b.WriteString("Every question is multiple choice with exactly 4 options, and answer must match one of them.\n")
	}
}

func buildChatPrompt(question, docText string) string {
	var b strings.Builder
	b.WriteString("You are a study assistant answering questions about a document. Answer in plain sentences without markdown formatting.\n")
	if strings.TrimSpace(docText) != "" {
		b.WriteString("\nDocument:\n")
		runes := []rune(docText)
		if len(runes) > 15000 {
			docText = string(runes[:15000])
		}
		b.WriteString(docText)
		b.WriteString("\n")
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func buildExplainPrompt(text string) string {
	return "Explain the following passage for a complete beginner. Respond with a single JSON object " +
		`{"summary": one-sentence summary, "easy_explanation": a plain-language explanation, "example": a concrete everyday example}.` +
		"\nRespond with the JSON object only.\n\nPassage:\n" + text
}

// parseMaterial decodes the model reply into StudyMaterial and rejects
// replies that carry none of the expected content.
func parseMaterial(raw string) (*models.StudyMaterial, error) {
	var material models.StudyMaterial
	if err := unmarshalFenced(raw, &material); err != nil {
		return nil, err
	}
	if len(material.FullSummary) == 0 && len(material.StructuredSummary) == 0 && len(material.QuizData.Questions) == 0 {
		return nil, fmt.Errorf("model reply carried no usable material")
	}
	return &material, nil
}

// unmarshalFenced extracts the JSON payload from a model reply. Replies
// wrapped in a ```json fence are unwrapped first; otherwise the outermost
// braces are used, falling back to the raw text.
func unmarshalFenced(raw string, dest interface{}) error {
	return json.Unmarshal([]byte(extractJSON(raw)), dest)
}

func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx := strings.Index(trimmed, "```json"); idx >= 0 {
		rest := trimmed[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}

// normalizeQuiz enforces the per-type option invariants and renumbers the
// questions sequentially. Multiple-choice questions the model returned without
// their options are unusable and get dropped.
func normalizeQuiz(quiz *models.QuizData, quizType models.QuizType) {
	kept := make([]models.QuizQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		switch quizType {
		case models.QuizTrueFalse:
			q.Options = append([]string(nil), models.TrueFalseOptions...)
		case models.QuizShort:
			q.Options = []string{}
		default:
			if len(q.Options) == 0 {
				continue
			}
		}
		q.ID = len(kept) + 1
		kept = append(kept, q)
	}
	quiz.Questions = kept
}

func stripMarkdown(s string) string {
	replacer := strings.NewReplacer("**", "", "###", "", "##", "")
	return strings.TrimSpace(replacer.Replace(s))
}

func firstRunes(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}

// mockMaterial is the deterministic bundle served when no model credential is
// configured or the model call fails.
func mockMaterial(quizCount int, quizType models.QuizType) *models.StudyMaterial {
	return &models.StudyMaterial{
		FullSummary: []models.SummarySection{
			{
				MainTitle: "Document Overview",
				Content: []string{
					"This is sample study material shown because no AI credential is configured.",
					"Upload processing, saving and reports all work normally in this mode.",
				},
			},
			{
				MainTitle: "Key Takeaways",
				Content: []string{
					"Configure an API key to replace this sample with material generated from your document.",
				},
			},
		},
		StructuredSummary: []models.ConceptNote{
			{Title: "Sample Concept A", Content: "A short description of the first core concept."},
			{Title: "Sample Concept B", Content: "A short description of the second core concept."},
			{Title: "Sample Concept C", Content: "A short description of the third core concept."},
		},
		Keywords: []string{"sample", "study", "summary", "quiz"},
		ExpectedQuestions: []models.ExpectedQuestion{
			{Question: "What does this document cover?", Answer: "It covers the sample topics listed in the overview."},
			{Question: "Why is sample material shown?", Answer: "Because no AI credential is configured."},
		},
		QuizData: mockQuiz(quizCount, quizType),
	}
}

func mockQuiz(count int, quizType models.QuizType) models.QuizData {
	questions := make([]models.QuizQuestion, 0, count)
	for i := 1; i <= count; i++ {
		q := models.QuizQuestion{
			ID:       i,
			Question: fmt.Sprintf("Sample question %d: which option is correct?", i),
		}
		switch quizType {
		case models.QuizTrueFalse:
			q.Options = append([]string(nil), models.TrueFalseOptions...)
			q.Answer = "O"
		case models.QuizShort:
			q.Options = []string{}
			q.Answer = fmt.Sprintf("answer %d", i)
		default:
			q.Options = []string{"Option 1", "Option 2", "Option 3", "Option 4"}
			q.Answer = "Option 1"
		}
		questions = append(questions, q)
	}
	return models.QuizData{Questions: questions}
}
