// Package extract implements the document extraction backends. Each backend
// is one strategy behind the repositories.DocumentExtractor contract; the
// extraction service cascades through them in priority order.
package extract

import (
	"bytes"
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

// ExternalTool shells out to the standalone multi-method extraction utility.
// The document travels through a temporary file and the method through the
// argument list; nothing is interpolated into a script.
type ExternalTool struct {
	argv    []string
	timeout time.Duration
	runner  *procrun.Runner
	logger  *zap.Logger
}

var _ repositories.DocumentExtractor = (*ExternalTool)(nil)

// NewExternalTool creates the backend from the configured command line,
// e.g. "python3 scripts/pdf_text_extractor.py".
func NewExternalTool(command string, timeout time.Duration, runner *procrun.Runner, logger *zap.Logger) (*ExternalTool, error) {
	parser := shellwords.NewParser()
	argv, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse extractor command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("extractor command is empty")
	}
	return &ExternalTool{
		argv:    argv,
		timeout: timeout,
		runner:  runner,
		logger:  logger,
	}, nil
}

func (t *ExternalTool) Name() string { return "external" }

// Available reports whether the interpreter is installed. Checked per call
// so an interpreter installed after startup is picked up.
func (t *ExternalTool) Available() bool {
	_, err := exec.LookPath(t.argv[0])
	return err == nil
}

// Extract writes the document to a temporary file, runs the tool with the
// requested method, and reads the text artifact the tool produces. The
// artifact is preferred over captured stdout since stdout carries progress
// lines. Both temporary files are removed on every path.
func (t *ExternalTool) Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	method := req.Method
	if method == "" || !domain.ValidExternalMethod(method) {
		method = domain.MethodAuto
	}

	id := uuid.New().String()
	workDir := os.TempDir()
	inputPath := filepath.Join(workDir, id+".pdf")
	outputName := id + "_extracted.txt"
	outputPath := filepath.Join(workDir, outputName)

	if err := os.WriteFile(inputPath, req.Document, 0o600); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("stage document: %w", err)
	}
	defer os.Remove(inputPath)
	defer os.Remove(outputPath)

	argv := append([]string{}, t.argv...)
	argv = append(argv,
		inputPath,
		"--method", string(method),
		"--output-dir", workDir,
		"--output-file", outputName,
	)

	t.logger.Info("Running external extraction tool",
		zap.String("method", string(method)),
		zap.Int("documentBytes", len(req.Document)))

	result, err := t.runner.Run(ctx, procrun.Spec{
		Argv:    argv,
		Timeout: t.timeout,
	})
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	text, readErr := os.ReadFile(outputPath)
	if readErr != nil {
		// Interleaved stdout is better than nothing. It is extraction
		// output, so it is kept whole, not run through the failure
		// diagnostic cleanup.
		if len(result.Stdout) > 0 {
			t.logger.Warn("Output artifact unreadable, using captured stdout",
				zap.String("path", outputPath),
				zap.Error(readErr))
			text = bytes.TrimSpace(result.Stdout)
		} else {
			return domain.ExtractionResult{}, &domain.ArtifactReadError{Path: outputPath, Err: readErr}
		}
	}

	return domain.ExtractionResult{
		Text: string(text),
		Metadata: domain.ExtractionMetadata{
			Method:         string(method),
			CharacterCount: len(text),
		},
	}, nil
}
