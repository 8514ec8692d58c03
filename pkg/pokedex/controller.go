package pokedex

import (
	"context"
	"sync"
)

// Controller serializes lookups for one consumer, typically a search box:
// starting a new operation cancels the one still in flight, and a
// superseded operation's result is never committed, regardless of
// completion order.
type Controller struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewController creates an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Begin cancels any pending operation and opens a new one. It returns the
// context to run the operation under and a commit func: call it before
// applying results; a false return means the operation was superseded and
// its outcome must be discarded.
func (c *Controller) Begin(parent context.Context) (context.Context, func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	c.seq++
	seq := c.seq

	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel

	commit := func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.seq == seq
	}
	return ctx, commit
}

// Stop cancels any pending operation without starting a new one. Used on
// teardown of the consuming view.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
}
