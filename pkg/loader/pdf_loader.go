package loader

import (
	"context"
	"strings"

	"docchat-be/internal/entity"

	"github.com/ledongthuc/pdf"
)

// PDFLoader extracts plain text from PDF files, one page per logical
// division so chunk position keys map to page numbers.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

var _ DocumentLoader = (*PDFLoader)(nil)

func (l *PDFLoader) Load(ctx context.Context, path string) (*entity.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var (
		pages []entity.DocumentPage
		full  strings.Builder
	)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		pages = append(pages, entity.DocumentPage{Number: i, Text: text})
		full.WriteString(text)
	}

	return &entity.SourceDocument{
		Path:  path,
		Text:  full.String(),
		Pages: pages,
	}, nil
}
