package resilience

import (
	"context"
	"errors"
	"sync"
)

// SingleFlight deduplicates concurrent calls for the same key. Callers that
// join an in-flight call share its result, so V must be safe to share or be
// copied by the caller.
type SingleFlight[V any] struct {
	mu    sync.Mutex
	calls map[string]*call[V]
}

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
	dup  int
}

// Do runs fn once per key among concurrent callers. shared reports whether
// the result was handed to more than one caller.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (v V, err error, shared bool) {
	return g.DoContext(context.Background(), key, fn)
}

// DoContext is Do for callers with their own deadline. A caller that joined
// another caller's call stops waiting when ctx is done. If the call it joined
// failed only because the leader's context ended, it runs fn itself instead
// of inheriting that cancellation.
func (g *SingleFlight[V]) DoContext(ctx context.Context, key string, fn func() (V, error)) (v V, err error, shared bool) {
	for {
		g.mu.Lock()
		if g.calls == nil {
			g.calls = make(map[string]*call[V])
		}

		c, ok := g.calls[key]
		if !ok {
			break
		}
		c.dup++
		g.mu.Unlock()

		select {
		case <-c.done:
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err(), false
		}
		if isContextError(c.err) && ctx.Err() == nil {
			continue
		}
		return c.val, c.err, true
	}

	c := &call[V]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	shared = c.dup > 0
	g.mu.Unlock()
	close(c.done)

	return c.val, c.err, shared
}

// InFlight reports how many keys are currently loading.
func (g *SingleFlight[V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
