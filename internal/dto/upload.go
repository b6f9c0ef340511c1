package dto

import "github.com/learningflow/api/internal/models"

// UploadInput bundles everything the upload pipeline needs for one request.
type UploadInput struct {
	Data             []byte
	OriginalFilename string
	CustomFilename   string
	Category         string
	UserID           *string
}

// UploadResult is the flat response body the frontend consumes after an
// upload. The StudyMaterial fields are inlined next to the file metadata.
type UploadResult struct {
	models.StudyMaterial
	TranslatedText *string `json:"translatedText,omitempty"`
	PDFURL         *string `json:"pdfUrl"`
	PDFText        string  `json:"pdfText"`
	SessionID      *string `json:"sessionId"`
}
