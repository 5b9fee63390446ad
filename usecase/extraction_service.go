package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/domain"
	"github.com/hanifra/studycast/server/domain/repositories"
)

// Quality gate thresholds. The threshold is a property of the caller's
// intended use, not of any backend: a generic extraction call accepts
// anything readable, while a call feeding long-form generation needs enough
// material to work with.
const (
	GateDefault  = 10
	GateLongForm = 50
)

// ExtractionService runs the extraction backend cascade: external
// multi-method tool, then the in-process parser, then the heuristic byte
// scan. The first result that passes the caller's quality gate wins.
type ExtractionService struct {
	external  repositories.DocumentExtractor
	library   repositories.DocumentExtractor
	heuristic repositories.DocumentExtractor
	logger    *zap.Logger
}

// NewExtractionService creates the orchestrator. external may be nil when
// no tool command is configured.
func NewExtractionService(
	external repositories.DocumentExtractor,
	library repositories.DocumentExtractor,
	heuristic repositories.DocumentExtractor,
	logger *zap.Logger,
) *ExtractionService {
	return &ExtractionService{
		external:  external,
		library:   library,
		heuristic: heuristic,
		logger:    logger,
	}
}

// Extract cascades through the backends in priority order and applies the
// quality gate to every candidate. A backend returning text shorter than
// the gate counts as a failure for orchestration purposes even if the
// backend itself reported success. When every backend is exhausted the
// aggregated InsufficientTextError carries the most informative backend
// failure observed and the unmet threshold.
func (s *ExtractionService) Extract(ctx context.Context, req domain.ExtractionRequest, gate int) (domain.ExtractionResult, error) {
	if gate <= 0 {
		gate = GateDefault
	}

	longest := 0
	cause := ""
	for _, backend := range s.chainFor(req) {
		result, err := s.attempt(ctx, backend, req)
		if err != nil {
			s.logger.Warn("Extraction backend failed",
				zap.String("backend", backend.Name()),
				zap.Error(err))
			if cause == "" {
				cause = err.Error()
			}
			continue
		}

		chars := len(result.Text)
		if chars >= gate {
			result.Success = true
			result.Metadata.CharacterCount = chars
			s.logger.Info("Extraction succeeded",
				zap.String("backend", backend.Name()),
				zap.String("method", result.Metadata.Method),
				zap.Int("characters", chars))
			return result, nil
		}

		s.logger.Info("Extracted text below quality gate",
			zap.String("backend", backend.Name()),
			zap.Int("characters", chars),
			zap.Int("gate", gate))
		if chars > longest {
			longest = chars
		}
	}

	return domain.ExtractionResult{}, &domain.InsufficientTextError{
		Threshold: gate,
		Longest:   longest,
		Cause:     cause,
	}
}

// chainFor builds the priority-ordered backend list for one request. The
// external tool participates only when the request allows it and the tool
// is installed; absence degrades to the next backend rather than failing.
func (s *ExtractionService) chainFor(req domain.ExtractionRequest) []repositories.DocumentExtractor {
	var chain []repositories.DocumentExtractor
	if req.UseExternalTool && s.external != nil {
		if s.external.Available() {
			chain = append(chain, s.external)
		} else {
			s.logger.Debug("External extraction tool not installed, skipping")
		}
	}
	if s.library != nil {
		chain = append(chain, s.library)
	}
	if s.heuristic != nil {
		chain = append(chain, s.heuristic)
	}
	return chain
}

// attempt is the per-backend error boundary. A panicking parser is recorded
// as an ordinary backend error so the cascade continues.
func (s *ExtractionService) attempt(ctx context.Context, backend repositories.DocumentExtractor, req domain.ExtractionRequest) (result domain.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s backend panicked: %v", backend.Name(), r)
		}
	}()
	return backend.Extract(ctx, req)
}
