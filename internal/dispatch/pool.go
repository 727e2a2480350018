package dispatch

import (
	"context"
	"errors"
	"net/http"
)

// EndpointRing is a cyclic selector over a fixed, non-empty list of backend
// addresses. Selection is strict round-robin and health-blind; the ring is
// advanced one step per request by the single driver goroutine, so no
// locking is needed.
type EndpointRing struct {
	endpoints []string
	next      int
}

// NewEndpointRing returns a ring over endpoints. The list must be non-empty
// (enforced at config validation).
func NewEndpointRing(endpoints []string) *EndpointRing {
	return &EndpointRing{endpoints: endpoints}
}

// Next returns the current endpoint and advances the ring one step,
// wrapping modulo the pool size.
func (r *EndpointRing) Next() string {
	u := r.endpoints[r.next]
	r.next = (r.next + 1) % len(r.endpoints)
	return u
}

// Len returns the pool size.
func (r *EndpointRing) Len() int { return len(r.endpoints) }

// Pool dispatches requests across several HTTP endpoints, one ring step per
// request. There is no failover: a bad endpoint fails the run when its turn
// comes.
type Pool struct {
	ring   *EndpointRing
	model  string
	client *http.Client
}

// NewPool returns a pool dispatcher over urls. model, when non-empty, is
// forwarded in every request body.
func NewPool(urls []string, model string) (*Pool, error) {
	if len(urls) == 0 {
		return nil, errors.New("endpoint pool must not be empty")
	}
	return &Pool{ring: NewEndpointRing(urls), model: model, client: http.DefaultClient}, nil
}

// Dispatch implements [Dispatcher] by advancing the ring and POSTing to the
// selected endpoint.
func (p *Pool) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	return postDenoise(ctx, p.client, p.ring.Next(), p.model, req)
}
