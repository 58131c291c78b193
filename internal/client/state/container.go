// Package state holds the plumbing shared by the client stores: a reducer
// container with subscribers, a ticket sequence for superseding delayed
// operations, and a cancellable sleep.
package state

import "sync"

// Reducer computes the next state from the current one and an action.
type Reducer[S any, A any] func(S, A) S

// Container owns a state value that only changes through Dispatch.
// Subscribers run after the new state is stored, in registration order,
// outside the container lock.
type Container[S any, A any] struct {
	mu      sync.Mutex
	state   S
	reduce  Reducer[S, A]
	subs    []subscriber[S]
	nextSub int
}

type subscriber[S any] struct {
	id int
	fn func(S)
}

func NewContainer[S any, A any](initial S, reduce Reducer[S, A]) *Container[S, A] {
	return &Container[S, A]{state: initial, reduce: reduce}
}

// Get returns the current state.
func (c *Container[S, A]) Get() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies action, notifies subscribers and returns the new state.
func (c *Container[S, A]) Dispatch(action A) S {
	c.mu.Lock()
	next := c.reduce(c.state, action)
	c.state = next
	subs := make([]subscriber[S], len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return next
}

// Subscribe registers fn and returns a function that removes it.
func (c *Container[S, A]) Subscribe(fn func(S)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}
