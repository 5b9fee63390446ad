package extract

import (
	"bytes"
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/domain/repositories"
)

const (
	// Runs shorter than this inside a text object are treated as operator
	// noise rather than content.
	minRunLength = 10
	// When the first pass yields less than this, retry with literal
	// string scanning.
	firstPassFloor = 50
)

// Heuristic is the last-resort backend: a raw byte scan of the document for
// printable text. It never fails on malformed input; it degrades to an
// empty string, which then fails the caller's quality gate.
type Heuristic struct {
	logger *zap.Logger
}

var _ repositories.DocumentExtractor = (*Heuristic)(nil)

// NewHeuristic creates the heuristic scanner backend.
func NewHeuristic(logger *zap.Logger) *Heuristic {
	return &Heuristic{logger: logger}
}

func (h *Heuristic) Name() string { return string(domain.MethodHeuristic) }

// Available always holds: the scanner has no external dependencies.
func (h *Heuristic) Available() bool { return true }

// Extract scans in two passes: printable runs inside BT/ET text objects
// first, parenthesized string literals second when the first pass comes up
// short.
func (h *Heuristic) Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	text := scanTextObjects(req.Document)
	if len(text) < firstPassFloor {
		h.logger.Debug("text object scan came up short, scanning string literals",
			zap.Int("chars", len(text)))
		text = scanStringLiterals(req.Document)
	}
	return domain.ExtractionResult{
		Text: text,
		Metadata: domain.ExtractionMetadata{
			Method:         h.Name(),
			CharacterCount: len(text),
		},
	}, nil
}

// scanTextObjects collects printable-ASCII runs between BT and ET markers,
// keeping only runs long enough to be content.
func scanTextObjects(content []byte) string {
	var parts []string
	rest := content
	for {
		start := bytes.Index(rest, []byte("BT"))
		if start < 0 {
			break
		}
		rest = rest[start+2:]
		end := bytes.Index(rest, []byte("ET"))
		if end < 0 {
			break
		}
		segment := rest[:end]
		rest = rest[end+2:]

		var run strings.Builder
		flush := func() {
			if run.Len() > minRunLength {
				parts = append(parts, run.String())
			}
			run.Reset()
		}
		for _, b := range segment {
			if b >= 0x20 && b < 0x7f {
				run.WriteByte(b)
			} else {
				flush()
			}
		}
		flush()
	}
	return strings.Join(parts, "\n")
}

// scanStringLiterals collects the contents of parenthesized literals, the
// form text-showing operators take in the raw document stream.
func scanStringLiterals(content []byte) string {
	var parts []string
	var run strings.Builder
	depth := 0
	escaped := false
	for _, b := range content {
		if depth == 0 {
			if b == '(' {
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch b {
		case '\\':
			escaped = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if run.Len() > 0 {
					parts = append(parts, run.String())
				}
				run.Reset()
			}
		default:
			if b >= 0x20 && b < 0x7f {
				run.WriteByte(b)
			}
		}
	}
	return strings.Join(parts, " ")
}
