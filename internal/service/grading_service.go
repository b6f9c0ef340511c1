package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/learningflow/api/internal/dto"
	"github.com/learningflow/api/internal/llm"
)

// shortAnswerLimit is the rune length up to which a mismatched user answer
// gets a canned verdict instead of a model judgement.
const shortAnswerLimit = 20

// GradingService scores a user's quiz answer and produces feedback. Short
// factual answers are graded by comparison; long free-form answers are judged
// by the model, with a canned verdict when the model is unavailable.
type GradingService struct {
	llm    llm.Client
	logger *zap.Logger
	mock   bool
}

// NewGradingService constructs a GradingService.
func NewGradingService(client llm.Client, logger *zap.Logger) *GradingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingService{
		llm:    client,
		logger: logger,
		mock:   client == nil || !client.Configured(),
	}
}

// Grade evaluates the submitted answer against the correct one.
func (s *GradingService) Grade(ctx context.Context, req dto.FeedbackRequest) dto.FeedbackResponse {
	user := strings.TrimSpace(req.UserAnswer)
	correct := strings.TrimSpace(req.CorrectAnswer)

	if user == correct {
		return dto.FeedbackResponse{
			IsCorrect: true,
			Feedback:  "Correct! Well done.",
		}
	}

	if len([]rune(user)) <= shortAnswerLimit {
		return dto.FeedbackResponse{
			IsCorrect: false,
			Feedback:  fmt.Sprintf("Not quite. The correct answer is \"%s\".", correct),
		}
	}

	if s.mock {
		return fallbackVerdict(correct)
	}

	prompt := buildGradingPrompt(req.Question, user, correct)
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("grading call failed, serving fallback verdict", zap.Error(err))
		return fallbackVerdict(correct)
	}

	var verdict dto.FeedbackResponse
	if err := unmarshalFenced(raw, &verdict); err != nil {
		s.logger.Warn("grading parse failed, serving fallback verdict", zap.Error(err))
		return fallbackVerdict(correct)
	}
	if strings.TrimSpace(verdict.Feedback) == "" {
		verdict.Feedback = fallbackVerdict(correct).Feedback
	}
	return verdict
}

func buildGradingPrompt(question, userAnswer, correctAnswer string) string {
	var b strings.Builder
	b.WriteString("You are grading a student's answer to a quiz question. Judge whether the student's answer conveys the same meaning as the model answer, even if worded differently.\n")
	b.WriteString("Respond with a single JSON object {\"is_correct\": boolean, \"feedback\": one or two encouraging sentences explaining the verdict}.\n")
	b.WriteString("Respond with the JSON object only.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Model answer: %s\n", correctAnswer)
	fmt.Fprintf(&b, "Student answer: %s\n", userAnswer)
	return b.String()
}

func fallbackVerdict(correct string) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		IsCorrect: false,
		Feedback:  fmt.Sprintf("Compare your answer with the model answer: \"%s\".", firstRunes(correct, 200)),
	}
}
