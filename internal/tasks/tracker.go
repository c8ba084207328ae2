package tasks

import (
	"context"
	"sync"
)

// Ticket identifies one background request.
type Ticket struct {
	Gen uint64
	ctx context.Context
}

// Context is cancelled when the tracker advances past the ticket's generation.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Tracker hands out tickets tagged with the current generation.
//
// Safe for concurrent use: tickets are checked from the UI loop while requests run elsewhere.
type Tracker struct {
	mu     sync.Mutex
	gen    uint64
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
}

// NewTracker creates a Tracker whose ticket contexts derive from parent.
func NewTracker(parent context.Context) *Tracker {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Tracker{parent: parent, ctx: ctx, cancel: cancel}
}

// Begin issues a ticket for the current generation.
func (t *Tracker) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Ticket{Gen: t.gen, ctx: t.ctx}
}

// Advance cancels every outstanding ticket and starts a new generation, which it returns.
func (t *Tracker) Advance() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancel()
	t.gen++
	t.ctx, t.cancel = context.WithCancel(t.parent)
	return t.gen
}

// Generation returns the current generation.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Current reports whether a result carrying gen may still be applied.
func (t *Tracker) Current(gen uint64) bool {
	return t.Generation() == gen
}

// Stop cancels every outstanding ticket without starting a new generation.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancel()
}
