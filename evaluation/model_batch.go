package evaluation

import (
	"time"

	"github.com/google/uuid"
)

// BatchResult is the envelope around one batch evaluation, carrying the
// id and timestamp the output writers stamp into generated artifacts.
type BatchResult struct {
	Id          string           `json:"id"`
	Predicate   string           `json:"predicate"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Results     EvaluationResult `json:"results"`
}

// NewBatchResult evaluates every declared feature against the predicate
// and wraps the outcome with a fresh evaluation id.
func NewBatchResult(config *RolloutConfig, predicate string, rng RandomSource) *BatchResult {
	return &BatchResult{
		Id:          uuid.New().String(),
		Predicate:   predicate,
		GeneratedAt: time.Now().UTC(),
		Results:     EvaluateAll(config, predicate, rng),
	}
}
