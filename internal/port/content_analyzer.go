package port

import (
	"context"

	"champdoc/internal/domain"
)

// ContentAnalyzer abstracts LLM-based validation of extracted document text
// against the medical-code rubric.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error)
}
