package evaluation

import (
	"math/rand"

	"github.com/twmb/murmur3"
)

// Max value of an unsigned 32-bit integer, which is what murmurhash returns
const maxHashValue uint32 = 4294967295

// RandomSource is the entropy seam consulted by probability conditions.
// Implementations return values in [0, 1). The source is injected rather
// than drawn from a global generator so tests can script exact sequences
// and assert call counts.
type RandomSource interface {
	Float64() float64
}

type pseudoRandomSource struct {
	rng *rand.Rand
}

// NewPseudoRandomSource returns a math/rand backed source. Not safe for
// concurrent use; parallel batch evaluation needs one source per
// goroutine.
func NewPseudoRandomSource(seed int64) RandomSource {
	return &pseudoRandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *pseudoRandomSource) Float64() float64 {
	return s.rng.Float64()
}

// StickySource derives the draw from a murmur3 bounded hash of the
// predicate, so the same predicate gets the same outcome from a
// probability condition on every run.
type StickySource struct {
	Predicate string
	Seed      uint32
}

func (s StickySource) Float64() float64 {
	mh := murmur3.SeedStringSum32(s.Seed, s.Predicate)
	return float64(mh) / (float64(maxHashValue) + 1)
}

// ScriptedSource replays a fixed sequence of draws and records how many
// were consumed. It panics when the script runs out, which makes an
// unexpected extra draw loud in tests.
type ScriptedSource struct {
	Values []float64
	Calls  int
}

func (s *ScriptedSource) Float64() float64 {
	if s.Calls >= len(s.Values) {
		panic("scripted random source exhausted")
	}
	value := s.Values[s.Calls]
	s.Calls++
	return value
}
