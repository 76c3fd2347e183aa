package evaluation

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckStageReferences_Valid(t *testing.T) {
	config := &RolloutConfig{
		Stages: map[string]ConditionList{
			"production": {AllowCondition{Patterns: []string{"^production/"}}},
			"canary":     {ProbabilityCondition{Value: 0.1}},
		},
		Features: map[string]Feature{
			"a": {Stages: []string{"production"}},
			"b": {Stages: []string{"production", "canary"}},
		},
	}
	if err := CheckStageReferences(config); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckStageReferences_NoFeatures(t *testing.T) {
	config := &RolloutConfig{
		Stages: map[string]ConditionList{"s": {AllowCondition{Patterns: []string{".*"}}}},
	}
	if err := CheckStageReferences(config); err != nil {
		t.Errorf("config without features trivially passes, got %v", err)
	}
}

func TestCheckStageReferences_MissingStage(t *testing.T) {
	config := &RolloutConfig{
		Stages: map[string]ConditionList{"production": {AllowCondition{Patterns: []string{".*"}}}},
		Features: map[string]Feature{
			"broken": {Stages: []string{"production", "does-not-exist"}},
		},
	}
	err := CheckStageReferences(config)
	if !errors.Is(err, ErrUndefinedStage) {
		t.Fatalf("Expected ErrUndefinedStage, got %v", err)
	}
	if !strings.Contains(err.Error(), "does-not-exist") {
		t.Errorf("error should identify the missing stage, got %q", err)
	}
}
