package rollout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rolloutgate/go-rollout-sdk/evaluation"
	"github.com/rolloutgate/go-rollout-sdk/util"
)

func init() {
	util.SetLogger(util.DiscardLogger{})
}

func newTestClient(t *testing.T, options *Options) *Client {
	t.Helper()
	client, err := NewClientFromFile("testdata/rollout.json", options)
	require.NoError(t, err)
	return client
}

func TestClient_AllFeatures_ReferenceFixture(t *testing.T) {
	client := newTestClient(t, nil)

	batch, err := client.AllFeatures("production/some-repo")
	require.NoError(t, err)
	require.NotEmpty(t, batch.Id)
	require.Equal(t, "production/some-repo", batch.Predicate)
	require.Equal(t, evaluation.EvaluationResult{
		"filetracker":   true,
		"newestfeature": true,
		"testfeature":   false,
	}, batch.Results)

	batch, err = client.AllFeatures("important")
	require.NoError(t, err)
	require.Equal(t, evaluation.EvaluationResult{
		"filetracker":   false,
		"newestfeature": false,
		"testfeature":   false,
	}, batch.Results)
}

func TestClient_IsFeatureEnabled(t *testing.T) {
	client := newTestClient(t, nil)

	require.True(t, client.IsFeatureEnabled("filetracker", "production/some-repo"))
	require.False(t, client.IsFeatureEnabled("filetracker", "staging/some-repo"))
	require.False(t, client.IsFeatureEnabled("no-such-feature", "production/some-repo"))
}

func TestClient_EnvironmentVariables(t *testing.T) {
	client := newTestClient(t, nil)

	envs := client.EnvironmentVariables("production/some-repo")
	require.Equal(t, []FeatureEnv{
		{
			Feature:   "filetracker",
			Variables: []evaluation.EnvVar{{Name: "FILETRACKER_ENABLED", Value: "1"}},
		},
	}, envs)

	require.Empty(t, client.EnvironmentVariables("important"))
}

func TestClient_StickyEvaluationIsStable(t *testing.T) {
	config := &evaluation.RolloutConfig{
		Stages: map[string]evaluation.ConditionList{
			"half": {evaluation.ProbabilityCondition{Value: 0.5}},
		},
		Features: map[string]evaluation.Feature{
			"coin": {Stages: []string{"half"}},
		},
	}
	client, err := NewClient(config, &Options{Sticky: true})
	require.NoError(t, err)

	first := client.IsFeatureEnabled("coin", "production/some-repo")
	for i := 0; i < 20; i++ {
		require.Equal(t, first, client.IsFeatureEnabled("coin", "production/some-repo"))
	}
}

func TestNewClient_RejectsNilConfig(t *testing.T) {
	_, err := NewClient(nil, nil)
	require.Error(t, err)
}

func TestNewClient_RejectsDanglingStageReference(t *testing.T) {
	config := &evaluation.RolloutConfig{
		Stages: map[string]evaluation.ConditionList{
			"production": {evaluation.AllowCondition{Patterns: []string{".*"}}},
		},
		Features: map[string]evaluation.Feature{
			"broken": {Stages: []string{"nowhere"}},
		},
	}
	_, err := NewClient(config, nil)
	require.ErrorIs(t, err, evaluation.ErrUndefinedStage)
}
