package rollout

import (
	"time"

	"github.com/rolloutgate/go-rollout-sdk/evaluation"
	"github.com/rolloutgate/go-rollout-sdk/util"
)

type Options struct {
	// RandomSource backs probability conditions. Defaults to a
	// time-seeded pseudo-random source. Ignored when Sticky is set.
	RandomSource evaluation.RandomSource
	// Sticky derives each draw from a murmur3 hash of the predicate
	// instead of the RandomSource, so a predicate's probability outcome
	// is stable across runs.
	Sticky     bool
	StickySeed uint32
	// RequestTimeout bounds HTTP fetches of remote configurations.
	RequestTimeout time.Duration
	Logger         util.Logger
}

func (o *Options) CheckDefaults() {
	if o.RequestTimeout <= time.Duration(0) {
		o.RequestTimeout = time.Second * 10
	}
	if o.RandomSource == nil {
		o.RandomSource = evaluation.NewPseudoRandomSource(time.Now().UnixNano())
	}
}
