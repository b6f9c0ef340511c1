package models

// QuizType enumerates the supported quiz question formats.
type QuizType string

const (
	QuizObjective QuizType = "objective"
	QuizTrueFalse QuizType = "truefalse"
	QuizShort     QuizType = "short"
)

// Valid reports whether the quiz type is one of the supported formats.
func (t QuizType) Valid() bool {
	switch t {
	case QuizObjective, QuizTrueFalse, QuizShort:
		return true
	}
	return false
}

// TrueFalseOptions is the fixed option set for truefalse questions.
var TrueFalseOptions = []string{"O", "X"}

// StudyMaterial is the structured learning content generated from a document.
// The JSON field names are part of the frontend contract and mirror the shape
// requested from the model verbatim.
type StudyMaterial struct {
	FullSummary       []SummarySection   `json:"fullSummary"`
	StructuredSummary []ConceptNote      `json:"structuredSummary"`
	Keywords          []string           `json:"keywords"`
	ExpectedQuestions []ExpectedQuestion `json:"expectedQuestions"`
	QuizData          QuizData           `json:"quizData"`
}

// SummarySection is one titled block of the long-form summary.
type SummarySection struct {
	MainTitle string   `json:"mainTitle"`
	Content   []string `json:"content"`
}

// ConceptNote is one entry of the short structured summary.
type ConceptNote struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExpectedQuestion is a likely exam question with its model answer.
type ExpectedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizData wraps the generated quiz questions.
type QuizData struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is a single quiz item. Options is empty for short-answer
// questions and exactly {"O","X"} for truefalse ones.
type QuizQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
