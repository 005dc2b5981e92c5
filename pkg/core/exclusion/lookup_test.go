package exclusion

import (
	"slices"
	"testing"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
)

func indices(ts []*chaos.Target) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		if t == nil {
			out[i] = -1
			continue
		}
		out[i] = t.Index
	}
	return out
}

func TestBuildLookup(t *testing.T) {
	targets := chaos.NewTargets(4)

	tests := []struct {
		name       string
		exclusions []int
		from       int
		want       []int
	}{
		{"no exclusions", nil, 0, []int{0, 1, 2, 3}},
		{"rotation starts at self", nil, 2, []int{2, 3, 0, 1}},
		{"no repeat", []int{0}, 1, []int{2, 3, 0}},
		{"no neighbour", []int{1}, 3, []int{3, 1, 2}},
		{"no repeat no opposite", []int{0, 2}, 1, []int{2, 0}},
		{"out of range ignored", []int{7, -1}, 0, []int{0, 1, 2, 3}},
		{"everything excluded", []int{0, 1, 2, 3}, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := BuildLookup(targets, tt.exclusions)
			got := indices(lookup.Successors(targets[tt.from]))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Successors(T%d) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestBuildLookupIdempotent(t *testing.T) {
	targets := chaos.NewTargets(6)
	a := BuildLookup(targets, []int{0, 3})
	b := BuildLookup(targets, []int{3, 0})
	if !a.Equal(b) {
		t.Error("rebuilding the lookup from identical inputs should give an equal mapping")
	}

	c := BuildLookup(targets, []int{0})
	if a.Equal(c) {
		t.Error("lookups from different exclusions should differ")
	}
}

func TestSuccessorsOfNil(t *testing.T) {
	targets := chaos.NewTargets(3)
	lookup := BuildLookup(targets, nil)
	if got := lookup.Successors(nil); len(got) != 0 {
		t.Errorf("Successors(nil) = %v, want empty", indices(got))
	}
}
