package rollout

import (
	"errors"
	"fmt"

	"github.com/rolloutgate/go-rollout-sdk/evaluation"
	"github.com/rolloutgate/go-rollout-sdk/util"
)

// Client evaluates rollout features against one immutable configuration.
// It owns no network connections and keeps no state between evaluations
// beyond the random source; reconfiguration means building a new Client.
type Client struct {
	config  *evaluation.RolloutConfig
	options *Options
}

// NewClient wraps an already parsed configuration. The referential
// integrity check runs here so a config with dangling stage references is
// rejected before any evaluation can happen.
func NewClient(config *evaluation.RolloutConfig, options *Options) (*Client, error) {
	if config == nil {
		return nil, errors.New("missing rollout configuration")
	}
	if options == nil {
		options = &Options{}
	}
	options.CheckDefaults()
	if options.Logger != nil {
		util.SetLogger(options.Logger)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := evaluation.CheckStageReferences(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &Client{config: config, options: options}, nil
}

// NewClientFromFile loads, validates and wraps a JSON or YAML rollout
// document from disk.
func NewClientFromFile(path string, options *Options) (*Client, error) {
	if options == nil {
		options = &Options{}
	}
	options.CheckDefaults()
	config, err := NewConfigManager(options).LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewClient(config, options)
}

// NewClientFromURL fetches, validates and wraps a rollout document served
// over HTTP(S).
func NewClientFromURL(url string, options *Options) (*Client, error) {
	if options == nil {
		options = &Options{}
	}
	options.CheckDefaults()
	config, err := NewConfigManager(options).LoadURL(url)
	if err != nil {
		return nil, err
	}
	return NewClient(config, options)
}

// Config exposes the wrapped configuration, read-only by convention.
func (c *Client) Config() *evaluation.RolloutConfig {
	return c.config
}

func (c *Client) randomSourceFor(predicate string) evaluation.RandomSource {
	if c.options.Sticky {
		return evaluation.StickySource{Predicate: predicate, Seed: c.options.StickySeed}
	}
	return c.options.RandomSource
}

// IsFeatureEnabled reports whether the named feature is enabled for the
// predicate. Runtime defects disable the feature rather than crash.
func (c *Client) IsFeatureEnabled(featureName string, predicate string) (enabled bool) {
	defer func() {
		if r := recover(); r != nil {
			// Return a usable disabled default in a panic situation
			enabled = false
			util.Errorf("recovered from panic evaluating feature %q: %v", featureName, r)
		}
	}()

	return evaluation.IsFeatureEnabled(c.config, featureName, predicate, c.randomSourceFor(predicate))
}

// AllFeatures evaluates every declared feature against the predicate and
// returns the batch envelope consumed by the output writers.
func (c *Client) AllFeatures(predicate string) (result *evaluation.BatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("recovered from panic in batch evaluation: %v", r)
			util.Errorf("%v", err)
		}
	}()

	return evaluation.NewBatchResult(c.config, predicate, c.randomSourceFor(predicate)), nil
}

// FeatureEnv pairs an enabled feature with the environment variables it
// declares.
type FeatureEnv struct {
	Feature   string
	Variables []evaluation.EnvVar
}

// EnvironmentVariables returns, in sorted feature order, the declared
// environment variables of every feature enabled for the predicate.
// Features that are disabled or declare no variables contribute nothing.
func (c *Client) EnvironmentVariables(predicate string) []FeatureEnv {
	results := evaluation.EvaluateAll(c.config, predicate, c.randomSourceFor(predicate))

	var envs []FeatureEnv
	for _, name := range c.config.FeatureNames() {
		if !results[name] {
			continue
		}
		feature := c.config.Features[name]
		if len(feature.EnvironmentVariables) == 0 {
			continue
		}
		envs = append(envs, FeatureEnv{Feature: name, Variables: feature.EnvironmentVariables})
	}
	return envs
}
