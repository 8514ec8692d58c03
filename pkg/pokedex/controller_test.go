package pokedex

import (
	"context"
	"testing"
)

func TestControllerSupersedes(t *testing.T) {
	c := NewController()

	ctxA, commitA := c.Begin(context.Background())
	ctxB, commitB := c.Begin(context.Background())

	if ctxA.Err() == nil {
		t.Error("first operation's context was not cancelled by the second Begin")
	}
	if ctxB.Err() != nil {
		t.Error("second operation's context must remain live")
	}
	if commitA() {
		t.Error("superseded operation committed")
	}
	if !commitB() {
		t.Error("current operation failed to commit")
	}
}

func TestControllerLatestWinsRegardlessOfCompletionOrder(t *testing.T) {
	c := NewController()

	_, commitA := c.Begin(context.Background())
	_, commitB := c.Begin(context.Background())

	var state string
	// b completes first, then a's late arrival tries to overwrite
	if commitB() {
		state = "b"
	}
	if commitA() {
		state = "a"
	}

	if state != "b" {
		t.Errorf("state = %q, want %q: a stale completion overwrote newer data", state, "b")
	}
}

func TestControllerStop(t *testing.T) {
	c := NewController()

	ctx, commit := c.Begin(context.Background())
	c.Stop()

	if ctx.Err() == nil {
		t.Error("Stop() did not cancel the pending operation")
	}
	if commit() {
		t.Error("operation committed after Stop()")
	}
}

func TestControllerStopIdle(t *testing.T) {
	c := NewController()
	// Stop with nothing pending must be a no-op
	c.Stop()

	ctx, commit := c.Begin(context.Background())
	if ctx.Err() != nil {
		t.Error("Begin() after idle Stop() returned a dead context")
	}
	if !commit() {
		t.Error("operation after idle Stop() failed to commit")
	}
}
