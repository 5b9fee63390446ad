package repositories

import (
	"context"

	"github.com/hanifra/studycast/server/domain"
)

// DocumentExtractor is one concrete extraction strategy. Implementations
// are polymorphic behind this contract and are iterated by the orchestrator
// in priority order.
type DocumentExtractor interface {
	// Name identifies the backend in logs and metadata.
	Name() string
	// Available reports whether the backend can be attempted at all, for
	// example whether its interpreter is installed. Checked at call time,
	// never at startup.
	Available() bool
	// Extract attempts to pull text out of the document. Returned text has
	// not yet been checked against any quality gate.
	Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error)
}
