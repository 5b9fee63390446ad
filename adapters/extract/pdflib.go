package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/domain/repositories"
)

// Library parses the document in process. It has no interpreter dependency,
// which makes it the natural first fallback when the external tool is
// disabled or not installed.
type Library struct {
	logger *zap.Logger
}

var _ repositories.DocumentExtractor = (*Library)(nil)

// NewLibrary creates the in-process parser backend.
func NewLibrary(logger *zap.Logger) *Library {
	return &Library{logger: logger}
}

func (l *Library) Name() string { return string(domain.MethodNative) }

func (l *Library) Available() bool { return true }

// Extract walks the document page by page, joining non-empty pages with the
// same section markers the external tool emits so downstream consumers see
// a uniform shape. The parser panics on some malformed files; the recover
// turns that into an ordinary backend error so the cascade continues.
func (l *Library) Extract(ctx context.Context, req domain.ExtractionRequest) (result domain.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("native parser panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(req.Document), int64(len(req.Document)))
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("open document: %w", err)
	}

	pageCount := reader.NumPage()
	pagesWithText := 0
	var sections []string
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return domain.ExtractionResult{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Debug("page text extraction failed",
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pagesWithText++
		sections = append(sections, fmt.Sprintf("\n--- Page %d ---\n%s", i, text))
	}

	full := strings.Join(sections, "\n")
	return domain.ExtractionResult{
		Text: full,
		Metadata: domain.ExtractionMetadata{
			Method:         l.Name(),
			CharacterCount: len(full),
			PageCount:      pageCount,
			PagesWithText:  pagesWithText,
		},
	}, nil
}
