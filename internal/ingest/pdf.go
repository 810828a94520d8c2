package ingest

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

// PDFExtractor pulls plain text out of uploaded PDF documents.
type PDFExtractor struct {
	logger *zap.Logger
}

func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract returns the concatenated text of every readable page. A page whose
// extraction fails contributes nothing: partial extraction beats total
// failure. A document with zero extractable characters yields an empty
// string, not an error; callers decide how to present an unreadable document.
func (e *PDFExtractor) Extract(filename string, content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &entity.FetchError{URL: filename, Err: err}
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable pdf page",
				zap.String("filename", filename),
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}

		if text != "" {
			pages = append(pages, text)
		}
	}

	e.logger.Debug("extracted pdf text",
		zap.String("filename", filename),
		zap.Int("pages", numPages),
		zap.Int("readable_pages", len(pages)),
	)

	return CleanLines(strings.Join(pages, "\n")), nil
}
