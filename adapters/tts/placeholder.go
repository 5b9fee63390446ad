package tts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/domain/repositories"
	"github.com/hanifra/studycast/server/internal/audio"
)

// Placeholder is the guaranteed-fallback backend. It synthesizes the
// deterministic tone artifact sized to the estimated spoken length of
// req.Text, so the user is not misled by a mismatched-length placeholder.
type Placeholder struct {
	logger *zap.Logger
}

var _ repositories.SpeechSynthesizer = (*Placeholder)(nil)

// NewPlaceholder creates the placeholder backend.
func NewPlaceholder(logger *zap.Logger) *Placeholder {
	return &Placeholder{logger: logger}
}

// Synthesize writes the placeholder WAV at req.OutputPath, via a temporary
// file and rename so a partially written artifact is never visible. When
// even the artifact directory is unwritable the audio is returned inline
// instead of failing.
func (p *Placeholder) Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.SynthesisResult, error) {
	data, err := audio.SynthesizePlaceholder(len(req.Text))
	if err != nil {
		return domain.SynthesisResult{}, err
	}

	p.logger.Info("Synthesized placeholder audio",
		zap.Int("textChars", len(req.Text)),
		zap.Int("wavBytes", len(data)))

	tmpPath := filepath.Join(filepath.Dir(req.OutputPath), uuid.New().String()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err == nil {
		if err := os.Rename(tmpPath, req.OutputPath); err == nil {
			return domain.SynthesisResult{
				AudioPath: req.OutputPath,
				Voice:     req.Profile.Label,
			}, nil
		}
		os.Remove(tmpPath)
	}

	p.logger.Warn("Could not persist placeholder audio, returning inline",
		zap.String("path", req.OutputPath))
	return domain.SynthesisResult{
		AudioData: data,
		Voice:     req.Profile.Label,
	}, nil
}
