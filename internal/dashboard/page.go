package dashboard

import (
	"context"
	"sync"

	"treasury-dashboard/internal/observability"
)

// Page guards one view against out-of-order responses. Each Load cancels
// the load before it, and only the most recent Load may commit its result:
// a response for parameters the user has already moved away from is
// dropped.
type Page[P, V any] struct {
	name string

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc

	params P
	value  V
	loaded bool
}

// NewPage creates a Page. name labels its metrics.
func NewPage[P, V any](name string) *Page[P, V] {
	return &Page[P, V]{name: name}
}

// Ticket identifies one load started with Begin.
type Ticket[P any] struct {
	seq    uint64
	params P
	cancel context.CancelFunc
}

// Params returns the parameters the load was started with.
func (t Ticket[P]) Params() P { return t.params }

// Begin starts a load for params: it cancels the load before it and makes
// this one the latest. The returned context is canceled when a later load
// begins or the page is closed. Callers that fetch asynchronously must call
// Begin in request order and pass the ticket to Commit.
func (p *Page[P, V]) Begin(ctx context.Context, params P) (Ticket[P], context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.seq++
	lctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	return Ticket[P]{seq: p.seq, params: params, cancel: cancel}, lctx
}

// Commit stores v if t is still the latest load and reports whether it did.
// A superseded result is dropped.
func (p *Page[P, V]) Commit(t Ticket[P], v V) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	t.cancel()
	if t.seq != p.seq {
		observability.RecordStale(p.name)
		return false
	}
	p.cancel = nil
	p.params = t.params
	p.value = v
	p.loaded = true
	return true
}

// Load runs fetch for params between Begin and Commit. It returns the
// fetched value and true when this load is still the latest once fetch
// returns; otherwise it returns the zero value and false.
func (p *Page[P, V]) Load(ctx context.Context, params P, fetch func(context.Context, P) V) (V, bool) {
	t, lctx := p.Begin(ctx, params)
	v := fetch(lctx, params)
	if !p.Commit(t, v) {
		var zero V
		return zero, false
	}
	return v, true
}

// Current returns the last committed parameters and value. ok is false
// before the first committed load.
func (p *Page[P, V]) Current() (params P, value V, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params, p.value, p.loaded
}

// Close cancels any load in flight.
func (p *Page[P, V]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.seq++
}
