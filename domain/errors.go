package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedMediaType is returned when the uploaded file is not a
// document type the pipeline handles. Fatal to the request (HTTP 400).
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ProcessUnavailableError indicates the external tool or its interpreter is
// not installed. Recovered by cascading to the next backend.
type ProcessUnavailableError struct {
	Tool string
	Err  error
}

func (e *ProcessUnavailableError) Error() string {
	return fmt.Sprintf("%s is not available: %v", e.Tool, e.Err)
}

func (e *ProcessUnavailableError) Unwrap() error { return e.Err }

// ProcessTimeoutError indicates the bounded wait on an external process
// elapsed and the process was terminated.
type ProcessTimeoutError struct {
	Tool    string
	Timeout time.Duration
}

func (e *ProcessTimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %s", e.Tool, e.Timeout)
}

// ProcessFailureError indicates an external process exited nonzero. The
// diagnostic is the process's error stream, trimmed and stripped of
// non-ASCII status glyphs.
type ProcessFailureError struct {
	Tool       string
	ExitCode   int
	Diagnostic string
}

func (e *ProcessFailureError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.ExitCode, e.Diagnostic)
}

// ArtifactReadError indicates an output file an external process should have
// produced is missing or unreadable.
type ArtifactReadError struct {
	Path string
	Err  error
}

func (e *ArtifactReadError) Error() string {
	return fmt.Sprintf("read output artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactReadError) Unwrap() error { return e.Err }

// InsufficientTextError is the aggregated failure returned when every
// extraction backend has been exhausted without meeting the quality gate.
// Cause carries the most informative backend failure observed, when any
// backend reported one (HTTP 422).
type InsufficientTextError struct {
	Threshold int
	Longest   int
	Cause     string
}

func (e *InsufficientTextError) Error() string {
	if e.Cause != "" {
		return e.Cause
	}
	return fmt.Sprintf("extracted text is below the minimum of %d characters (longest candidate: %d)", e.Threshold, e.Longest)
}
