package algosolver

// Solver is the dispatch service: it owns the handle pool over one backend
// and exposes the planning and dispatch entry points for every operation.
//
// Construct one Solver per process (or per backend) and share it; all
// methods are safe for concurrent use. Concurrent dispatches never share a
// solver context: each call borrows its own from the pool.
type Solver struct {
	backend Backend
	pool    *HandlePool
}

// New creates a Solver over an explicitly injected backend.
func New(b Backend) (*Solver, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	if !b.Available() {
		return nil, ErrBackendUnavailable
	}
	return &Solver{backend: b, pool: NewHandlePool(b)}, nil
}

// NewFromRegistered creates a Solver over the backend installed with
// RegisterBackend.
func NewFromRegistered() (*Solver, error) {
	b := getBackend()
	if b == nil {
		return nil, ErrNoBackend
	}
	return New(b)
}

// Backend returns the backend this solver dispatches to.
func (s *Solver) Backend() Backend {
	return s.backend
}

// Pool returns the solver's handle pool.
func (s *Solver) Pool() *HandlePool {
	return s.pool
}

// Close releases the pooled solver contexts.
func (s *Solver) Close() error {
	return s.pool.Close()
}
