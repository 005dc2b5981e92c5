package selector

import (
	"slices"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
)

// Rule picks the next target given the previous ones, most recent first.
// It returns nil when no target is legal.
type Rule func(previous []*chaos.Target) *chaos.Target

// History tracks the last Size chosen targets and delegates the choice to
// a Rule. It is not safe for concurrent use.
type History struct {
	size   int
	rule   Rule
	window []*chaos.Target
}

// NewHistory returns a selector remembering the last size choices.
func NewHistory(size int, rule Rule) *History {
	if size < 0 {
		size = 0
	}
	return &History{
		size:   size,
		rule:   rule,
		window: make([]*chaos.Target, 0, size+1),
	}
}

// Next asks the rule for a target, records it and returns it.
func (h *History) Next() *chaos.Target {
	t := h.rule(h.window)

	h.window = slices.Insert(h.window, 0, t)
	if len(h.window) > h.size {
		h.window = h.window[:h.size]
	}
	return t
}

// Size is the capacity of the history window.
func (h *History) Size() int { return h.size }

// Window returns a copy of the current history, most recent first.
func (h *History) Window() []*chaos.Target {
	return slices.Clone(h.window)
}
