package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrInvalidName = errors.New("names must be non-empty and contain no whitespace")
var ErrEmptyStage = errors.New("stage condition list must not be empty")
var ErrProbabilityRange = errors.New("probability must be between 0 and 1")

var namePattern = regexp.MustCompile(`^\S+$`)

// EnvVar is one name/value pair declared by a feature, decoded from a
// single-key mapping {name: value}.
type EnvVar struct {
	Name  string
	Value string
}

func (e *EnvVar) UnmarshalJSON(data []byte) error {
	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return err
	}
	return e.fromMapping(kv)
}

func (e *EnvVar) UnmarshalYAML(value *yaml.Node) error {
	var kv map[string]string
	if err := value.Decode(&kv); err != nil {
		return err
	}
	return e.fromMapping(kv)
}

func (e *EnvVar) fromMapping(kv map[string]string) error {
	if len(kv) != 1 {
		return fmt.Errorf("environment variable entry must carry exactly one key, got %d", len(kv))
	}
	for name, value := range kv {
		e.Name = name
		e.Value = value
	}
	return nil
}

// Feature maps a named capability to the rollout stages that can enable
// it. Stage order is preserved for deterministic iteration even though it
// does not change the OR result.
type Feature struct {
	// An absent or empty stage list is legal and means "not rolled out".
	Stages               []string `json:"stages" yaml:"stages"`
	Description          string   `json:"description,omitempty" yaml:"description,omitempty"`
	EnvironmentVariables []EnvVar `json:"environmentVariables,omitempty" yaml:"environmentVariables,omitempty"`
}

// RolloutConfig is the fully parsed rollout document. It is immutable for
// the duration of all evaluations performed against it.
type RolloutConfig struct {
	Stages   map[string]ConditionList `json:"stages" yaml:"stages" validate:"required"`
	Features map[string]Feature       `json:"features,omitempty" yaml:"features,omitempty"`

	featureNames []string
}

// FeatureNames returns the declared feature names in sorted order, so
// batch evaluation and the output writers iterate deterministically.
// Configs built as struct literals compile the list on first use.
func (c *RolloutConfig) FeatureNames() []string {
	if c.featureNames == nil && len(c.Features) > 0 {
		c.compile()
	}
	return c.featureNames
}

func (c *RolloutConfig) compile() {
	names := make([]string, 0, len(c.Features))
	for name := range c.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	c.featureNames = names
}

// Validate applies the document rules the struct tags cannot express:
// name shape, non-empty stage condition lists, probability bounds.
// Referential integrity is a separate pass, see CheckStageReferences.
func (c *RolloutConfig) Validate() error {
	for name, conditions := range c.Stages {
		if !namePattern.MatchString(name) {
			return fmt.Errorf("stage %q: %w", name, ErrInvalidName)
		}
		if len(conditions) == 0 {
			return fmt.Errorf("stage %q: %w", name, ErrEmptyStage)
		}
		for i, condition := range conditions {
			if p, ok := condition.(ProbabilityCondition); ok && (p.Value < 0 || p.Value > 1) {
				return fmt.Errorf("stage %q condition %d: %w: %v", name, i, ErrProbabilityRange, p.Value)
			}
		}
	}
	for name := range c.Features {
		if !namePattern.MatchString(name) {
			return fmt.Errorf("feature %q: %w", name, ErrInvalidName)
		}
	}
	return nil
}

// ParseConfig decodes a JSON rollout document. Structural and referential
// validation are separate steps, see RolloutConfig.Validate and
// CheckStageReferences.
func ParseConfig(raw []byte) (*RolloutConfig, error) {
	config := &RolloutConfig{}
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, err
	}
	config.compile()
	return config, nil
}

// ParseConfigYAML decodes a YAML rollout document into the same
// structures as ParseConfig.
func ParseConfigYAML(raw []byte) (*RolloutConfig, error) {
	config := &RolloutConfig{}
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, err
	}
	config.compile()
	return config, nil
}
