package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrMalformedCondition = errors.New("condition must carry exactly one of allowlist, denylist, probability")
var ErrUnknownCondition = errors.New("unknown condition type")

// Condition is one entry of a stage's ordered condition list.
type Condition interface {
	Kind() string
}

// AllowCondition is satisfied when the predicate matches at least one
// pattern.
type AllowCondition struct {
	Patterns []string
}

func (AllowCondition) Kind() string { return "allowlist" }

// DenyCondition is satisfied when the predicate matches no pattern.
type DenyCondition struct {
	Patterns []string
}

func (DenyCondition) Kind() string { return "denylist" }

// ProbabilityCondition is satisfied when a fresh draw r is strictly less
// than Value. A draw equal to Value fails; the threshold is exclusive on
// the passing side, so P(pass) tracks Value.
type ProbabilityCondition struct {
	Value float64
}

func (ProbabilityCondition) Kind() string { return "probability" }

// conditionShape is the partially parsed condition object, before deciding
// which of the three variants it instantiates.
type conditionShape struct {
	Allowlist   *[]string `json:"allowlist" yaml:"allowlist"`
	Denylist    *[]string `json:"denylist" yaml:"denylist"`
	Probability *float64  `json:"probability" yaml:"probability"`
}

func (s conditionShape) condition() (Condition, error) {
	tags := 0
	if s.Allowlist != nil {
		tags++
	}
	if s.Denylist != nil {
		tags++
	}
	if s.Probability != nil {
		tags++
	}
	if tags != 1 {
		return nil, ErrMalformedCondition
	}

	switch {
	case s.Allowlist != nil:
		return AllowCondition{Patterns: *s.Allowlist}, nil
	case s.Denylist != nil:
		return DenyCondition{Patterns: *s.Denylist}, nil
	default:
		return ProbabilityCondition{Value: *s.Probability}, nil
	}
}

// ConditionList decodes a stage's condition array. An object that
// instantiates zero or more than one of the three condition shapes is a
// decode error, not a runtime branch.
type ConditionList []Condition

func (c *ConditionList) UnmarshalJSON(data []byte) error {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(data, &rawItems); err != nil {
		return err
	}

	conditions := make([]Condition, 0, len(rawItems))
	for i, rawItem := range rawItems {
		var shape conditionShape
		if err := json.Unmarshal(rawItem, &shape); err != nil {
			return fmt.Errorf("error unmarshalling condition %d: %w", i, err)
		}
		condition, err := shape.condition()
		if err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, condition)
	}

	*c = conditions
	return nil
}

func (c *ConditionList) UnmarshalYAML(value *yaml.Node) error {
	var rawItems []yaml.Node
	if err := value.Decode(&rawItems); err != nil {
		return err
	}

	conditions := make([]Condition, 0, len(rawItems))
	for i, rawItem := range rawItems {
		var shape conditionShape
		if err := rawItem.Decode(&shape); err != nil {
			return fmt.Errorf("error unmarshalling condition %d: %w", i, err)
		}
		condition, err := shape.condition()
		if err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, condition)
	}

	*c = conditions
	return nil
}
