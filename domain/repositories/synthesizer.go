package repositories

import (
	"context"

	"github.com/hanifra/studycast/server/domain"
)

// SpeechSynthesizer abstracts one speech synthesis backend.
type SpeechSynthesizer interface {
	// Synthesize renders req.Text as audio at req.OutputPath.
	Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.SynthesisResult, error)
}
