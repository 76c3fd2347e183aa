package rollout

import (
	"context"
	"errors"

	"github.com/open-feature/go-sdk/pkg/openfeature"
)

// RolloutProvider implements the OpenFeature FeatureProvider interface on
// top of a rollout Client. Only boolean flags resolve against the rollout
// engine; this system models rollout state, so the other flag types
// resolve to their defaults.
type RolloutProvider struct {
	Client *Client
}

// Metadata returns the metadata of the provider
func (p RolloutProvider) Metadata() openfeature.Metadata {
	return openfeature.Metadata{Name: "rollout-go-provider"}
}

// BooleanEvaluation resolves a feature's rollout state for the predicate
// carried in the evaluation context.
func (p RolloutProvider) BooleanEvaluation(ctx context.Context, flag string, defaultValue bool, evalCtx openfeature.FlattenedContext) openfeature.BoolResolutionDetail {
	predicate, err := predicateFromEvaluationContext(evalCtx)
	if err != nil {
		return openfeature.BoolResolutionDetail{
			Value: defaultValue,
			ProviderResolutionDetail: openfeature.ProviderResolutionDetail{
				ResolutionError: openfeature.NewGeneralResolutionError(err.Error()), Reason: openfeature.ErrorReason,
			},
		}
	}

	if p.Client.IsFeatureEnabled(flag, predicate) {
		return openfeature.BoolResolutionDetail{Value: true, ProviderResolutionDetail: openfeature.ProviderResolutionDetail{Reason: openfeature.TargetingMatchReason}}
	}

	return openfeature.BoolResolutionDetail{Value: false, ProviderResolutionDetail: openfeature.ProviderResolutionDetail{Reason: openfeature.DefaultReason}}
}

// StringEvaluation returns the default; rollout flags are boolean only
func (p RolloutProvider) StringEvaluation(ctx context.Context, flag string, defaultValue string, evalCtx openfeature.FlattenedContext) openfeature.StringResolutionDetail {
	return openfeature.StringResolutionDetail{Value: defaultValue, ProviderResolutionDetail: openfeature.ProviderResolutionDetail{Reason: openfeature.DefaultReason}}
}

// FloatEvaluation returns the default; rollout flags are boolean only
func (p RolloutProvider) FloatEvaluation(ctx context.Context, flag string, defaultValue float64, evalCtx openfeature.FlattenedContext) openfeature.FloatResolutionDetail {
	return openfeature.FloatResolutionDetail{Value: defaultValue, ProviderResolutionDetail: openfeature.ProviderResolutionDetail{Reason: openfeature.DefaultReason}}
}

// IntEvaluation returns the default; rollout flags are boolean only
func (p RolloutProvider) IntEvaluation(ctx context.Context, flag string, defaultValue int64, evalCtx openfeature.FlattenedContext) openfeature.IntResolutionDetail {
	return openfeature.IntResolutionDetail{Value: defaultValue, ProviderResolutionDetail: openfeature.ProviderResolutionDetail{Reason: openfeature.DefaultReason}}
}

// ObjectEvaluation returns the default; rollout flags are boolean only
func (p RolloutProvider) ObjectEvaluation(ctx context.Context, flag string, defaultValue interface{}, evalCtx openfeature.FlattenedContext) openfeature.InterfaceResolutionDetail {
	return openfeature.InterfaceResolutionDetail{Value: defaultValue, ProviderResolutionDetail: openfeature.ProviderResolutionDetail{Reason: openfeature.DefaultReason}}
}

// Hooks returns hooks
func (p RolloutProvider) Hooks() []openfeature.Hook {
	return []openfeature.Hook{}
}

func predicateFromEvaluationContext(evalCtx openfeature.FlattenedContext) (string, error) {
	if v, exists := evalCtx["predicate"]; exists {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}
	if v, exists := evalCtx[openfeature.TargetingKey]; exists {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}
	return "", errors.New("predicate or targetingKey must be provided")
}
