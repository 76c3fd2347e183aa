package evaluation

import "testing"

func TestStickySource_Deterministic(t *testing.T) {
	a := StickySource{Predicate: "production/some-repo", Seed: 1}.Float64()
	b := StickySource{Predicate: "production/some-repo", Seed: 1}.Float64()
	if a != b {
		t.Error("same predicate and seed must produce the same draw")
	}
}

func TestStickySource_DiffersByPredicate(t *testing.T) {
	a := StickySource{Predicate: "production/some-repo", Seed: 1}.Float64()
	b := StickySource{Predicate: "production/other-repo", Seed: 1}.Float64()
	if a == b {
		t.Error("different predicates should produce different draws")
	}
}

func TestStickySource_DiffersBySeed(t *testing.T) {
	a := StickySource{Predicate: "production/some-repo", Seed: 1}.Float64()
	b := StickySource{Predicate: "production/some-repo", Seed: 2}.Float64()
	if a == b {
		t.Error("different seeds should produce different draws")
	}
}

func TestStickySource_Bounds(t *testing.T) {
	predicates := []string{"", "a", "production/some-repo", "storage-important/master"}
	for _, predicate := range predicates {
		v := StickySource{Predicate: predicate}.Float64()
		if v < 0 || v >= 1 {
			t.Errorf("draw for %q out of [0,1): %v", predicate, v)
		}
	}
}

func TestPseudoRandomSource_SeededSequenceRepeats(t *testing.T) {
	a := NewPseudoRandomSource(42)
	b := NewPseudoRandomSource(42)
	for i := 0; i < 10; i++ {
		av, bv := a.Float64(), b.Float64()
		if av != bv {
			t.Fatalf("same seed diverged at draw %d: %v != %v", i, av, bv)
		}
		if av < 0 || av >= 1 {
			t.Fatalf("draw out of [0,1): %v", av)
		}
	}
}

func TestScriptedSource_CountsCalls(t *testing.T) {
	rng := &ScriptedSource{Values: []float64{0.1, 0.2}}
	if v := rng.Float64(); v != 0.1 {
		t.Errorf("expected 0.1, got %v", v)
	}
	if v := rng.Float64(); v != 0.2 {
		t.Errorf("expected 0.2, got %v", v)
	}
	if rng.Calls != 2 {
		t.Errorf("expected 2 calls, got %d", rng.Calls)
	}
}
