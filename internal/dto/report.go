package dto

// StudyReport is the input to the PDF report renderer. The three sections are
// rendered in fixed order: summary, quiz, wrong notes.
type StudyReport struct {
	Summary     ReportSummary `json:"summary"`
	QuizResults []QuizResult  `json:"quiz_results"`
	WrongNotes  WrongNotes    `json:"wrong_notes"`
}

// ReportSummary holds the ordered summary sections.
type ReportSummary struct {
	Sections []ReportSection `json:"sections"`
}

// ReportSection is one title/body pair of the summary.
type ReportSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// QuizResult is one answered quiz question.
type QuizResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// WrongNotes collects the wrong-answer entries of a study run.
type WrongNotes struct {
	WrongAnswers []WrongAnswer `json:"wrong_answers"`
}

// WrongAnswer is one reviewed mistake.
type WrongAnswer struct {
	QuestionNumber int    `json:"question_number"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Explanation    string `json:"explanation"`
}
