// Package observability lets a program watch what the pipeline, the cache
// and the server are doing without those packages knowing who listens.
//
// Library code reports an [Event] through [Emit] or a [Span]. A program
// registers one or more [Observer]s at startup; with none registered every
// event is dropped.
//
//	remove := observability.Register(observability.NewCounters())
//	defer remove()
//
//	span := observability.Begin(ctx, observability.OpGenerate, game)
//	// ... run the attractor ...
//	span.End(len(points), err)
package observability

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Op names what an event reports on.
type Op string

const (
	OpGenerate  Op = "generate"
	OpRender    Op = "render"
	OpCacheHit  Op = "cache.hit"
	OpCacheMiss Op = "cache.miss"
	OpCacheSet  Op = "cache.set"
	OpRequest   Op = "http.request"
	OpStream    Op = "stream"
)

// Event is one finished operation.
type Event struct {
	Op Op
	// Name qualifies Op: a game type, a format list, a cache level or a
	// route.
	Name string
	// Count is a point count, a byte size or an HTTP status, depending on Op.
	Count    int
	Duration time.Duration
	Err      error
}

// Observer receives events. Observe is called synchronously from the code
// that emits the event and may run on many goroutines at once.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

type registration struct{ o Observer }

var (
	mu        sync.RWMutex
	observers []*registration
)

// Register adds o and returns a function that removes it again.
func Register(o Observer) (remove func()) {
	if o == nil {
		return func() {}
	}
	r := &registration{o: o}
	mu.Lock()
	observers = append(observers, r)
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			observers = slices.DeleteFunc(observers, func(x *registration) bool { return x == r })
			mu.Unlock()
		})
	}
}

// Emit delivers e to every registered observer.
func Emit(ctx context.Context, e Event) {
	mu.RLock()
	current := observers
	mu.RUnlock()
	for _, r := range current {
		r.o.Observe(ctx, e)
	}
}

// Span times one operation.
type Span struct {
	ctx   context.Context
	op    Op
	name  string
	start time.Time
}

// Begin starts timing op.
func Begin(ctx context.Context, op Op, name string) Span {
	return Span{ctx: ctx, op: op, name: name, start: time.Now()}
}

// End emits the span's event with its elapsed time.
func (s Span) End(count int, err error) {
	Emit(s.ctx, Event{Op: s.op, Name: s.name, Count: count, Duration: time.Since(s.start), Err: err})
}
