package models

import "time"

// LearningSession is one persisted record representing either an uploaded
// document (is_wrong=false) or a single wrong-answer note derived from it
// (is_wrong=true, cloning the originating file descriptors).
type LearningSession struct {
	ID     string  `db:"id" json:"id"`
	UserID *string `db:"user_id" json:"-"`

	CustomFilename   string  `db:"custom_filename" json:"custom_filename"`
	OriginalFilename string  `db:"original_filename" json:"original_filename"`
	FilePath         string  `db:"file_path" json:"-"`
	FileSize         int64   `db:"file_size" json:"file_size"`
	FileType         string  `db:"file_type" json:"file_type"`
	Category         *string `db:"category" json:"category"`

	Question      *string `db:"question" json:"question"`
	UserAnswer    *string `db:"user_answer" json:"user_answer"`
	CorrectAnswer *string `db:"correct_answer" json:"correct_answer"`
	Explanation   *string `db:"explanation" json:"explanation"`
	IsWrong       bool    `db:"is_wrong" json:"is_wrong"`

	SummaryData    *string `db:"summary_data" json:"summary_data"`
	QuizData       *string `db:"quiz_data" json:"quiz_data"`
	WrongNotesData *string `db:"wrong_notes_data" json:"wrong_notes_data"`
	IsSaved        bool    `db:"is_saved" json:"is_saved"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
