package dto

import "github.com/learningflow/api/internal/models"

// GenerateQuizRequest asks for a standalone quiz over already-extracted text.
type GenerateQuizRequest struct {
	Text      string `json:"text" binding:"required"`
	QuizCount int    `json:"quiz_count"`
	QuizType  string `json:"quiz_type"`
}

// GenerateQuizResponse mirrors the legacy flat shape.
type GenerateQuizResponse struct {
	QuizData models.QuizData `json:"quizData"`
}

// ChatRequest asks a question grounded on previously extracted document text.
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
	PDFText  string `json:"pdfText"`
}

// ChatResponse carries the model answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// ExplainRequest asks for a beginner-level explanation of a text fragment.
type ExplainRequest struct {
	Text string `json:"text" binding:"required"`
}

// Explanation is the structured explanation payload.
type Explanation struct {
	Summary         string `json:"summary"`
	EasyExplanation string `json:"easy_explanation"`
	Example         string `json:"example"`
}

// ExplainResponse wraps the explanation for the legacy contract.
type ExplainResponse struct {
	Success     bool        `json:"success"`
	Explanation Explanation `json:"explanation"`
}

// FeedbackRequest submits one answered quiz question for grading.
type FeedbackRequest struct {
	Question      string `json:"question" binding:"required"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
}

// FeedbackResponse is the grading verdict.
type FeedbackResponse struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}
