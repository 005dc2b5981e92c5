package exclusion

import (
	"strconv"
	"strings"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithWeights expands every legal target into weights[t] copies of itself,
// turning the resolver output into a sampling pool. Targets with a weight of
// zero (or missing from the map) drop out of the result.
func WithWeights(weights map[*chaos.Target]int) ResolverOption {
	return func(r *Resolver) { r.weights = weights }
}

// Resolver computes the legal next targets for a history of previous
// targets, memoizing the result for every distinct history.
//
// A Resolver is not safe for concurrent use; it belongs to one attractor.
type Resolver struct {
	targets []*chaos.Target
	lookup  Lookup
	weights map[*chaos.Target]int

	cache  map[string][]*chaos.Target
	hits   int
	misses int
}

// NewResolver returns a resolver over targets using the given lookup.
func NewResolver(targets []*chaos.Target, lookup Lookup, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		targets: targets,
		lookup:  lookup,
		cache:   make(map[string][]*chaos.Target),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the targets legal after previous (most recent first).
//
// With no previous targets every target is legal. If the most recent target
// is nil no selection was possible last time, and the result is empty. An
// empty result means there is no legal target.
//
// The returned slice is shared with the cache and must not be modified.
func (r *Resolver) Resolve(previous []*chaos.Target) []*chaos.Target {
	key := historyKey(previous)
	if cached, ok := r.cache[key]; ok {
		r.hits++
		return cached
	}
	r.misses++

	result := r.compute(previous)
	r.cache[key] = result
	return result
}

// Stats reports cache hits and misses since construction.
func (r *Resolver) Stats() (hits, misses int) {
	return r.hits, r.misses
}

func (r *Resolver) compute(previous []*chaos.Target) []*chaos.Target {
	if len(previous) > 0 && previous[0] == nil {
		return []*chaos.Target{}
	}

	allowed := make([]map[*chaos.Target]bool, len(previous))
	for i, p := range previous {
		succ := r.lookup.Successors(p)
		set := make(map[*chaos.Target]bool, len(succ))
		for _, t := range succ {
			set[t] = true
		}
		allowed[i] = set
	}

	legal := make([]*chaos.Target, 0, len(r.targets))
	for _, t := range r.targets {
		if inAll(allowed, t) {
			legal = append(legal, t)
		}
	}

	if r.weights == nil {
		return legal
	}
	pool := make([]*chaos.Target, 0, len(legal))
	for _, t := range legal {
		for range r.weights[t] {
			pool = append(pool, t)
		}
	}
	return pool
}

func inAll(sets []map[*chaos.Target]bool, t *chaos.Target) bool {
	for _, s := range sets {
		if !s[t] {
			return false
		}
	}
	return true
}

// historyKey packs the history tuple (count, t1, ..., tn) into a string.
// A nil target is written as "-".
func historyKey(previous []*chaos.Target) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(previous)))
	for _, t := range previous {
		b.WriteByte('|')
		if t == nil {
			b.WriteByte('-')
			continue
		}
		b.WriteString(strconv.Itoa(t.Index))
	}
	return b.String()
}
