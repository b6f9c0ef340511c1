package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/learningflow/api/internal/dto"
)

const fallbackFont = "Arial"

// ReportRenderer renders a study report into a paginated PDF document.
// The font is resolved once at construction: when the configured TTF exists it
// is registered as a UTF-8 font, otherwise the renderer degrades to a core
// font instead of failing the render.
type ReportRenderer struct {
	fontName string
	fontPath string
}

// NewReportRenderer probes the font path and returns a renderer.
func NewReportRenderer(fontPath, fontName string) *ReportRenderer {
	r := &ReportRenderer{fontName: fallbackFont}
	if fontPath == "" || fontName == "" {
		return r
	}
	if _, err := os.Stat(fontPath); err != nil {
		return r
	}
	r.fontName = fontName
	r.fontPath = fontPath
	return r
}

// FontName exposes the resolved font family, mainly for tests and logging.
func (r *ReportRenderer) FontName() string {
	return r.fontName
}

// Render produces the three-section report: summary, quiz, wrong notes.
func (r *ReportRenderer) Render(report dto.StudyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	if r.fontPath != "" {
		pdf.AddUTF8Font(r.fontName, "", r.fontPath)
		pdf.AddUTF8Font(r.fontName, "B", r.fontPath)
	}
	pdf.AddPage()

	r.title(pdf, "Learning Report")

	r.heading(pdf, "Summary")
	for _, section := range report.Summary.Sections {
		if section.Title != "" {
			r.bold(pdf, section.Title)
		}
		if section.Content != "" {
			r.body(pdf, section.Content)
		}
		pdf.Ln(3)
	}

	pdf.AddPage()
	r.heading(pdf, "Quiz")
	for i, item := range report.QuizResults {
		if item.Question == "" {
			continue
		}
		r.bold(pdf, fmt.Sprintf("Q%d. %s", i+1, item.Question))
		r.body(pdf, "Your answer: "+item.UserAnswer)
		r.body(pdf, "Correct answer: "+item.CorrectAnswer)
		pdf.Ln(4)
	}

	pdf.AddPage()
	r.heading(pdf, "Wrong Notes")
	if len(report.WrongNotes.WrongAnswers) == 0 {
		r.body(pdf, "No mistakes. Every question was answered correctly!")
	}
	for i, item := range report.WrongNotes.WrongAnswers {
		number := item.QuestionNumber
		if number == 0 {
			number = i + 1
		}
		r.bold(pdf, fmt.Sprintf("Question %d", number))
		r.body(pdf, "Your answer: "+item.UserAnswer)
		r.body(pdf, "Correct answer: "+item.CorrectAnswer)
		if item.Explanation != "" {
			r.body(pdf, "Explanation: "+item.Explanation)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ReportRenderer) title(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(r.fontName, "B", 22)
	pdf.CellFormat(0, 14, text, "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

func (r *ReportRenderer) heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(r.fontName, "B", 15)
	pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (r *ReportRenderer) bold(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(r.fontName, "B", 11)
	pdf.MultiCell(0, 6, text, "", "L", false)
}

func (r *ReportRenderer) body(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(r.fontName, "", 11)
	pdf.MultiCell(0, 6, text, "", "L", false)
	pdf.Ln(1)
}
