package observability

import (
	"context"
	"sync"
	"time"
)

// Stat aggregates the events of one Op and Name.
type Stat struct {
	Events   int64         `json:"events"`
	Errors   int64         `json:"errors"`
	Total    int64         `json:"total"`
	Duration time.Duration `json:"duration_ns"`
}

// Counters is an Observer that keeps running totals per operation.
type Counters struct {
	mu    sync.Mutex
	stats map[Op]map[string]*Stat
}

// NewCounters returns empty counters.
func NewCounters() *Counters {
	return &Counters{stats: make(map[Op]map[string]*Stat)}
}

func (c *Counters) Observe(_ context.Context, e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byName, ok := c.stats[e.Op]
	if !ok {
		byName = make(map[string]*Stat)
		c.stats[e.Op] = byName
	}
	s, ok := byName[e.Name]
	if !ok {
		s = &Stat{}
		byName[e.Name] = s
	}
	s.Events++
	s.Total += int64(e.Count)
	s.Duration += e.Duration
	if e.Err != nil {
		s.Errors++
	}
}

// Snapshot copies the current totals.
func (c *Counters) Snapshot() map[Op]map[string]Stat {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[Op]map[string]Stat, len(c.stats))
	for op, byName := range c.stats {
		m := make(map[string]Stat, len(byName))
		for name, s := range byName {
			m[name] = *s
		}
		out[op] = m
	}
	return out
}

// Sum returns the totals of op across all names.
func (c *Counters) Sum(op Op) Stat {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum Stat
	for _, s := range c.stats[op] {
		sum.Events += s.Events
		sum.Errors += s.Errors
		sum.Total += s.Total
		sum.Duration += s.Duration
	}
	return sum
}
