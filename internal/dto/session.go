package dto

import "encoding/json"

// SaveWrongNoteRequest records one wrong answer against an upload session.
type SaveWrongNoteRequest struct {
	SessionID     string `json:"session_id"`
	Question      string `json:"question" validate:"required"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
	Explanation   string `json:"explanation"`
}

// SaveStudyRequest persists the full study outcome for a session. The blobs
// are stored verbatim, so they stay raw JSON all the way down.
type SaveStudyRequest struct {
	SessionID   string          `json:"session_id" validate:"required"`
	SummaryData json.RawMessage `json:"summary_data"`
	QuizData    json.RawMessage `json:"quiz_data"`
	WrongNotes  json.RawMessage `json:"wrong_notes"`
}
