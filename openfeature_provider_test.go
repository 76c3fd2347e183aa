package rollout

import (
	"context"
	"testing"

	"github.com/open-feature/go-sdk/pkg/openfeature"
	"github.com/stretchr/testify/require"
)

func TestRolloutProvider_BooleanEvaluation(t *testing.T) {
	provider := RolloutProvider{Client: newTestClient(t, nil)}

	detail := provider.BooleanEvaluation(context.Background(), "filetracker", false, openfeature.FlattenedContext{
		openfeature.TargetingKey: "production/some-repo",
	})
	require.True(t, detail.Value)
	require.Equal(t, openfeature.TargetingMatchReason, detail.Reason)

	detail = provider.BooleanEvaluation(context.Background(), "testfeature", true, openfeature.FlattenedContext{
		openfeature.TargetingKey: "production/some-repo",
	})
	require.False(t, detail.Value)
	require.Equal(t, openfeature.DefaultReason, detail.Reason)
}

func TestRolloutProvider_PredicateAttributeWins(t *testing.T) {
	provider := RolloutProvider{Client: newTestClient(t, nil)}

	detail := provider.BooleanEvaluation(context.Background(), "filetracker", false, openfeature.FlattenedContext{
		"predicate":              "production/some-repo",
		openfeature.TargetingKey: "important",
	})
	require.True(t, detail.Value)
}

func TestRolloutProvider_MissingPredicate(t *testing.T) {
	provider := RolloutProvider{Client: newTestClient(t, nil)}

	detail := provider.BooleanEvaluation(context.Background(), "filetracker", true, openfeature.FlattenedContext{})
	require.True(t, detail.Value)
	require.Equal(t, openfeature.ErrorReason, detail.Reason)
}

func TestRolloutProvider_NonBooleanTypesDefault(t *testing.T) {
	provider := RolloutProvider{Client: newTestClient(t, nil)}
	evalCtx := openfeature.FlattenedContext{openfeature.TargetingKey: "production/some-repo"}

	s := provider.StringEvaluation(context.Background(), "filetracker", "fallback", evalCtx)
	require.Equal(t, "fallback", s.Value)
	require.Equal(t, openfeature.DefaultReason, s.Reason)

	i := provider.IntEvaluation(context.Background(), "filetracker", int64(7), evalCtx)
	require.Equal(t, int64(7), i.Value)

	f := provider.FloatEvaluation(context.Background(), "filetracker", 1.5, evalCtx)
	require.Equal(t, 1.5, f.Value)

	o := provider.ObjectEvaluation(context.Background(), "filetracker", map[string]any{"a": 1}, evalCtx)
	require.Equal(t, map[string]any{"a": 1}, o.Value)
}

func TestRolloutProvider_Metadata(t *testing.T) {
	provider := RolloutProvider{Client: newTestClient(t, nil)}
	require.Equal(t, "rollout-go-provider", provider.Metadata().Name)
	require.Empty(t, provider.Hooks())
}
