// Package procrun invokes external tools as child processes with a bounded
// lifetime. The calling goroutine blocks until the process exits, fails, or
// the timeout elapses; on timeout the process is terminated.
package procrun

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
)

// waitDelay is how long a process gets to exit after cancellation before it
// is force killed.
const waitDelay = 3 * time.Second

// Spec describes one invocation.
type Spec struct {
	// Argv is the program and its arguments. Inputs travel through Argv or
	// Stdin, never through an interpolated script string.
	Argv    []string
	Stdin   []byte
	Dir     string
	Timeout time.Duration
}

// Result holds what the process produced.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes Specs under a shared concurrency gate. The gate bounds the
// number of simultaneously spawned child processes so a burst of requests
// cannot exhaust process or file-descriptor limits.
type Runner struct {
	sem    chan struct{}
	logger *zap.Logger
}

// NewRunner creates a Runner allowing at most maxConcurrent child processes.
// maxConcurrent <= 0 defaults to the number of CPUs.
func NewRunner(maxConcurrent int, logger *zap.Logger) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}
	return &Runner{
		sem:    make(chan struct{}, maxConcurrent),
		logger: logger,
	}
}

// Run starts the process and waits for it to finish. Failures are reported
// as the typed errors from the domain package so orchestrators can decide
// whether to cascade: ProcessUnavailableError when the program is not
// installed, ProcessTimeoutError when the bounded wait elapsed, and
// ProcessFailureError on a nonzero exit.
func (r *Runner) Run(ctx context.Context, spec Spec) (Result, error) {
	if len(spec.Argv) == 0 {
		return Result{}, errors.New("empty command")
	}
	tool := spec.Argv[0]

	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	defer func() { <-r.sem }()

	runCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, tool, spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.WaitDelay = waitDelay
	if len(spec.Stdin) > 0 {
		cmd.Stdin = bytes.NewReader(spec.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		r.logger.Debug("external process finished",
			zap.String("tool", tool),
			zap.Duration("elapsed", elapsed))
		return result, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return result, &domain.ProcessUnavailableError{Tool: tool, Err: err}
	}
	if ctx.Err() != nil {
		// The caller gave up; this is not a process failure.
		return result, ctx.Err()
	}
	if runCtx.Err() != nil {
		r.logger.Warn("external process timed out",
			zap.String("tool", tool),
			zap.Duration("timeout", spec.Timeout))
		return result, &domain.ProcessTimeoutError{Tool: tool, Timeout: spec.Timeout}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, &domain.ProcessFailureError{
			Tool:       tool,
			ExitCode:   result.ExitCode,
			Diagnostic: Diagnostic(result.Stderr, result.Stdout),
		}
	}
	return result, err
}

// Diagnostic picks the most useful failure text from a process's streams:
// stderr when non-empty, stdout otherwise, cleaned of the non-ASCII status
// glyphs tools like to print and trimmed to a loggable length.
func Diagnostic(stderr, stdout []byte) string {
	text := strings.TrimSpace(string(stderr))
	if text == "" {
		text = strings.TrimSpace(string(stdout))
	}
	text = stripNonASCII(text)
	const maxLen = 500
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return text
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 0x20 && r < 0x7f) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
