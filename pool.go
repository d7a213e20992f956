package algosolver

import (
	"fmt"
	"sync"
)

// HandlePool lends out solver contexts and takes them back when the
// operation that borrowed them is done. Context creation costs
// milliseconds while operations arrive at compute-graph frequency, so
// returned contexts go on an idle list instead of being destroyed and are
// rebound to the next borrower's stream.
//
// The mutex guards only the idle list; it is held for the duration of a
// pop or push and never across backend calls.
type HandlePool struct {
	backend Backend

	mu     sync.Mutex
	idle   []Context
	closed bool
}

// NewHandlePool creates an empty pool over the given backend. Contexts are
// created lazily on first demand.
func NewHandlePool(b Backend) *HandlePool {
	return &HandlePool{backend: b}
}

// Borrow takes an idle context from the pool, creating one if none is
// available, and rebinds it to stream when stream is non-nil. Planning
// calls pass a nil stream: workspace queries never touch device memory.
//
// The returned Handle must be released; until then no other borrower can
// observe the same context.
func (p *HandlePool) Borrow(stream Stream) (*Handle, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	var ctx Context
	if n := len(p.idle); n > 0 {
		ctx = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	}
	p.mu.Unlock()

	if ctx == nil {
		created, err := p.backend.NewContext()
		if err != nil {
			return nil, fmt.Errorf("algosolver: create solver context: %w", err)
		}
		ctx = created
	}
	if stream != nil {
		if err := ctx.SetStream(stream); err != nil {
			p.put(ctx)
			return nil, fmt.Errorf("algosolver: bind stream: %w", err)
		}
	}
	return &Handle{pool: p, ctx: ctx}, nil
}

func (p *HandlePool) put(ctx Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = ctx.Destroy()
		return
	}
	p.idle = append(p.idle, ctx)
	p.mu.Unlock()
}

// IdleCount reports how many contexts are currently idle in the pool.
func (p *HandlePool) IdleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Close destroys all idle contexts. Intended for process teardown;
// outstanding handles are destroyed as they are released.
func (p *HandlePool) Close() error {
	p.mu.Lock()
	idle := p.idle
	p.idle = nil
	p.closed = true
	p.mu.Unlock()

	var firstErr error
	for _, ctx := range idle {
		if err := ctx.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Handle is a borrowed solver context. Release returns the context to the
// pool; releasing twice is a no-op.
type Handle struct {
	pool *HandlePool
	ctx  Context
}

// Context returns the borrowed solver context.
func (h *Handle) Context() Context {
	return h.ctx
}

// Release returns the context to the pool's idle list.
func (h *Handle) Release() {
	if h == nil || h.pool == nil {
		return
	}
	h.pool.put(h.ctx)
	h.pool = nil
	h.ctx = nil
}
