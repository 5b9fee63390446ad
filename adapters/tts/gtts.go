// Package tts implements the speech synthesis backends: the external
// Google TTS tool and the deterministic placeholder used when it fails.
package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/domain/repositories"
	"github.com/hanifra/studycast/server/internal/procrun"
)

// GoogleTTS shells out to the gTTS wrapper script. The script text travels
// through a temporary input file rather than the command line, so arbitrary
// script content can never be interpreted as arguments.
type GoogleTTS struct {
	argv    []string
	timeout time.Duration
	runner  *procrun.Runner
	logger  *zap.Logger
}

var _ repositories.SpeechSynthesizer = (*GoogleTTS)(nil)

// NewGoogleTTS creates the backend from the configured command line,
// e.g. "python3 scripts/tts_generate.py". The timeout bounds each
// invocation; on expiry the process is terminated.
func NewGoogleTTS(command string, timeout time.Duration, runner *procrun.Runner, logger *zap.Logger) (*GoogleTTS, error) {
	parser := shellwords.NewParser()
	argv, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse tts command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("tts command is empty")
	}
	return &GoogleTTS{
		argv:    argv,
		timeout: timeout,
		runner:  runner,
		logger:  logger,
	}, nil
}

// Available reports whether the interpreter is installed.
func (g *GoogleTTS) Available() bool {
	_, err := exec.LookPath(g.argv[0])
	return err == nil
}

// Synthesize renders req.Text at req.OutputPath. A zero-byte artifact is
// treated as a failure: the caller must be able to rely on a returned nil
// error meaning playable audio exists.
func (g *GoogleTTS) Synthesize(ctx context.Context, req domain.SynthesisRequest) (domain.SynthesisResult, error) {
	if !g.Available() {
		return domain.SynthesisResult{}, &domain.ProcessUnavailableError{
			Tool: g.argv[0],
			Err:  exec.ErrNotFound,
		}
	}

	textPath := filepath.Join(os.TempDir(), uuid.New().String()+".txt")
	if err := os.WriteFile(textPath, []byte(req.Text), 0o600); err != nil {
		return domain.SynthesisResult{}, fmt.Errorf("stage script text: %w", err)
	}
	defer os.Remove(textPath)

	argv := append([]string{}, g.argv...)
	argv = append(argv,
		"--text-file", textPath,
		"--lang", req.Profile.Language,
		"--tld", req.Profile.Accent,
		"--output", req.OutputPath,
	)

	g.logger.Info("Running external speech synthesis",
		zap.String("voice", req.Profile.Label),
		zap.Int("textChars", len(req.Text)))

	if _, err := g.runner.Run(ctx, procrun.Spec{
		Argv:    argv,
		Timeout: g.timeout,
	}); err != nil {
		os.Remove(req.OutputPath)
		return domain.SynthesisResult{}, err
	}

	info, err := os.Stat(req.OutputPath)
	if err != nil {
		return domain.SynthesisResult{}, &domain.ArtifactReadError{Path: req.OutputPath, Err: err}
	}
	if info.Size() == 0 {
		os.Remove(req.OutputPath)
		return domain.SynthesisResult{}, &domain.ArtifactReadError{
			Path: req.OutputPath,
			Err:  fmt.Errorf("artifact is empty"),
		}
	}

	return domain.SynthesisResult{
		AudioPath: req.OutputPath,
		Voice:     req.Profile.Label,
	}, nil
}
