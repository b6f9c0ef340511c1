package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/korean"

	appErrors "github.com/learningflow/api/pkg/errors"
)

// FileKind identifies the supported upload formats.
type FileKind string

const (
	KindPDF  FileKind = "pdf"
	KindText FileKind = "txt"
)

// KindFromExtension maps a lowercase file extension (without dot) to a kind.
func KindFromExtension(ext string) (FileKind, bool) {
	switch strings.ToLower(ext) {
	case "pdf":
		return KindPDF, true
	case "txt":
		return KindText, true
	}
	return "", false
}

// Extract converts an uploaded document into plain text. A document that
// yields no text at all is still returned as an empty string; rejecting empty
// output is the caller's decision.
func Extract(data []byte, kind FileKind) (string, error) {
	switch kind {
	case KindPDF:
		return extractPDF(data)
	case KindText:
		return extractText(data)
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupportedFile, "unsupported file kind: "+string(kind))
	}
}

// extractPDF decodes page by page, joining extracted text with newlines.
// Pages that yield no text contribute nothing; that is not an error.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrExtraction.Code, appErrors.ErrExtraction.Status, "could not open PDF")
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrExtraction.Code, appErrors.ErrExtraction.Status, "could not read PDF page")
		}
		if text == "" {
			continue
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

// extractText decodes as UTF-8 and falls back to EUC-KR for legacy documents.
func extractText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrExtraction.Code, appErrors.ErrExtraction.Status, "could not decode text file")
	}
	return string(decoded), nil
}
