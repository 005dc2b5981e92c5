package selector

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
)

func TestHistoryWindowBounded(t *testing.T) {
	targets := chaos.NewTargets(4)
	i := 0
	h := NewHistory(3, func([]*chaos.Target) *chaos.Target {
		i++
		return targets[i%4]
	})

	for step := 1; step <= 20; step++ {
		h.Next()
		w := h.Window()
		if len(w) > 3 {
			t.Fatalf("step %d: window length %d exceeds 3", step, len(w))
		}
		if step <= 3 && len(w) != step {
			t.Fatalf("step %d: window length %d, want %d", step, len(w), step)
		}
	}
}

func TestHistoryMostRecentFirst(t *testing.T) {
	targets := chaos.NewTargets(3)
	var seen [][]*chaos.Target
	seq := []*chaos.Target{targets[0], targets[1], targets[2]}
	h := NewHistory(2, func(prev []*chaos.Target) *chaos.Target {
		seen = append(seen, append([]*chaos.Target(nil), prev...))
		return seq[len(seen)-1]
	})

	h.Next()
	h.Next()
	h.Next()

	if len(seen[0]) != 0 {
		t.Errorf("first call saw %v, want empty history", seen[0])
	}
	if len(seen[2]) != 2 || seen[2][0] != targets[1] || seen[2][1] != targets[0] {
		t.Errorf("third call saw %v, want [T1 T0]", seen[2])
	}
	w := h.Window()
	if w[0] != targets[2] || w[1] != targets[1] {
		t.Errorf("window = %v, want [T2 T1]", w)
	}
}

func TestHistoryExclusionNoRepeat(t *testing.T) {
	targets := chaos.NewTargets(3)
	lookup := exclusion.BuildLookup(targets, []int{0})
	rng := rand.New(rand.NewPCG(3, 5))
	h := NewHistory(2, HistoryExclusion(exclusion.NewResolver(targets, lookup), rng))

	prev := h.Next()
	for step := range 1000 {
		next := h.Next()
		if next == nil {
			t.Fatalf("step %d: selector got stuck", step)
		}
		if next == prev {
			t.Fatalf("step %d: %v chosen twice in a row", step, next)
		}
		prev = next
	}
}

func TestHistoryExclusionFreezes(t *testing.T) {
	targets := chaos.NewTargets(3)
	// T0 -> T1 -> T2 -> T0 only; with a window of 2 every history of two
	// distinct targets has an empty intersection.
	lookup := exclusion.BuildLookup(targets, []int{0, 2})
	rng := rand.New(rand.NewPCG(1, 2))
	h := NewHistory(2, HistoryExclusion(exclusion.NewResolver(targets, lookup), rng))

	if h.Next() == nil {
		t.Fatal("first choice should succeed")
	}
	if h.Next() == nil {
		t.Fatal("second choice should succeed")
	}
	for step := range 10 {
		if got := h.Next(); got != nil {
			t.Fatalf("step %d: got %v, want stuck", step, got)
		}
	}
}

func TestPairwiseExclusion(t *testing.T) {
	targets := chaos.NewTargets(4)
	lookup := exclusion.BuildLookup(targets, []int{0})
	rng := rand.New(rand.NewPCG(9, 9))
	rule := PairwiseExclusion(targets, lookup, rng)

	// a repeated pair may not be followed by the same target again
	for range 200 {
		got := rule([]*chaos.Target{targets[1], targets[1]})
		if got == targets[1] {
			t.Fatal("T1 chosen after T1, T1")
		}
	}

	// distinct previous targets allow anything, including a repeat
	repeats := 0
	for range 400 {
		if rule([]*chaos.Target{targets[2], targets[3]}) == targets[2] {
			repeats++
		}
	}
	if repeats == 0 {
		t.Error("T2 never chosen after T2, T3; exclusions should not apply")
	}

	if got := rule([]*chaos.Target{nil, targets[0]}); got != nil {
		t.Errorf("rule with nil head = %v, want nil", got)
	}
	if got := rule(nil); got == nil {
		t.Error("rule with no history should choose a target")
	}
}

func TestPairwiseNoTripleRepeat(t *testing.T) {
	targets := chaos.NewTargets(3)
	lookup := exclusion.BuildLookup(targets, []int{0})
	h := NewHistory(2, PairwiseExclusion(targets, lookup, rand.New(rand.NewPCG(4, 4))))

	var a, b *chaos.Target
	for step := range 2000 {
		c := h.Next()
		if c == nil {
			t.Fatalf("step %d: stuck", step)
		}
		if step >= 2 && a == b && b == c {
			t.Fatalf("step %d: %v chosen three times in a row", step, c)
		}
		a, b = b, c
	}
}
