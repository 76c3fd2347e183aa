package evaluation

import (
	"errors"
	"fmt"

	"github.com/rolloutgate/go-rollout-sdk/util"
)

var ErrUndefinedStage = errors.New("feature references undefined stage")

// EvaluateConditions runs one stage's ordered condition list against the
// predicate. Evaluation stops at the first unsatisfied condition, so a
// probability condition placed after a failing allow or deny never
// consumes a draw. That ordering sensitivity is part of the contract.
func EvaluateConditions(conditions []Condition, predicate string, rng RandomSource) (bool, error) {
	for _, condition := range conditions {
		switch c := condition.(type) {
		case AllowCondition:
			matched, err := MatchesAny(predicate, c.Patterns)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		case DenyCondition:
			matched, err := MatchesAny(predicate, c.Patterns)
			if err != nil {
				return false, err
			}
			if matched {
				return false, nil
			}
		case ProbabilityCondition:
			if rng.Float64() >= c.Value {
				return false, nil
			}
		default:
			return false, fmt.Errorf("%w: %T", ErrUnknownCondition, condition)
		}
	}
	return true, nil
}

// IsFeatureEnabled reports whether the named feature is enabled for the
// predicate. An unknown feature or an empty stage list means "not rolled
// out", not an error. Per-stage results combine with OR, and every stage
// is evaluated even after one passes so draw counts stay deterministic.
// Evaluation errors disable the feature and surface through the log;
// they never abort a batch.
func IsFeatureEnabled(config *RolloutConfig, featureName string, predicate string, rng RandomSource) bool {
	feature, ok := config.Features[featureName]
	if !ok || len(feature.Stages) == 0 {
		return false
	}

	enabled := false
	for _, stageName := range feature.Stages {
		conditions, ok := config.Stages[stageName]
		if !ok {
			util.Warnf("Feature %q disabled: %s: %q", featureName, ErrUndefinedStage, stageName)
			return false
		}
		pass, err := EvaluateConditions(conditions, predicate, rng)
		if err != nil {
			util.Warnf("Feature %q disabled: stage %q: %s", featureName, stageName, err)
			return false
		}
		enabled = enabled || pass
	}
	return enabled
}

// EvaluationResult maps each declared feature name to its enabled state
// for one predicate.
type EvaluationResult map[string]bool

// EvaluateAll evaluates every declared feature against the predicate,
// producing exactly one entry per feature. A single feature's internal
// errors never abort the batch.
func EvaluateAll(config *RolloutConfig, predicate string, rng RandomSource) EvaluationResult {
	result := make(EvaluationResult, len(config.Features))
	for _, name := range config.FeatureNames() {
		result[name] = IsFeatureEnabled(config, name, predicate, rng)
	}
	return result
}
