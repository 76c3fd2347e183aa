package evaluation

import "fmt"

// CheckStageReferences verifies that every stage named by a feature is a
// declared stage key. Schema-level validation cannot express this
// cross-field rule, so it runs as an explicit second pass after
// structural validation succeeds. The first missing reference aborts the
// check; an invalid configuration is never partially accepted.
func CheckStageReferences(config *RolloutConfig) error {
	for _, featureName := range config.FeatureNames() {
		for _, stageName := range config.Features[featureName].Stages {
			if _, ok := config.Stages[stageName]; !ok {
				return fmt.Errorf("feature %q: %w: %q", featureName, ErrUndefinedStage, stageName)
			}
		}
	}
	return nil
}
