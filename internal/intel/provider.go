package intel

import (
	"context"
	"time"

	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

// Status classifies how a single provider call ended.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusTimeout Status = "timeout"
)

// Outcome is the result slot for one provider. Every provider registered for
// a subject kind produces exactly one Outcome per request, in registration
// order. A failing provider fills its slot, it never leaves a gap.
type Outcome struct {
	ProviderID string  `json:"providerId"`
	Status     Status  `json:"status"`
	Payload    Payload `json:"payload,omitempty"`
	Message    string  `json:"message,omitempty"`
	Cached     bool    `json:"cached"`
}

// OK reports whether the provider produced a usable payload.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

// Provider is one external data source. Implementations validate the subject
// kind, call the upstream service, and project its native schema into a
// Payload. A legitimate "not found" answer is a normal payload, not an error.
type Provider interface {
	// ID is the stable identifier used in outcome slots and cache keys.
	ID() string

	// Kinds lists the subject kinds this provider can answer for.
	Kinds() []Kind

	// TTL is how long a successful payload may be served from cache.
	TTL() time.Duration

	// Query performs the lookup under the caller-supplied deadline.
	Query(ctx context.Context, subject Subject) (Payload, error)
}

// Registry holds the ordered provider lists per subject kind. Registration
// order is the outcome slot order. The registry is built once at startup and
// read-only afterwards; it needs no synchronization.
type Registry struct {
	byKind map[Kind][]Provider
}

func NewRegistry() *Registry {
	return &Registry{byKind: make(map[Kind][]Provider)}
}

// Register appends the provider to the slot order of every kind it supports.
func (r *Registry) Register(p Provider) {
	for _, kind := range p.Kinds() {
		r.byKind[kind] = append(r.byKind[kind], p)
	}
}

// For returns the providers registered for a kind, in registration order.
func (r *Registry) For(kind Kind) []Provider {
	providers := r.byKind[kind]
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// supports reports whether the provider handles the given kind.
func supports(p Provider, kind Kind) bool {
	for _, k := range p.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// cachedProvider wraps a Provider with cache-first semantics: consult the
// cache, on miss call through and populate. Cache failures are fail-open:
// a broken store degrades to a direct provider call.
type cachedProvider struct {
	Provider
	cache *Cache
}

// Cached decorates a provider with the shared response cache. A nil cache
// returns the provider unchanged.
func Cached(p Provider, cache *Cache) Provider {
	if cache == nil {
		return p
	}
	return &cachedProvider{Provider: p, cache: cache}
}

func (c *cachedProvider) Query(ctx context.Context, subject Subject) (Payload, error) {
	payload, _, err := c.QueryCached(ctx, subject)
	return payload, err
}

// QueryCached is Query plus a flag telling whether the payload was served
// from the cache rather than fetched upstream.
func (c *cachedProvider) QueryCached(ctx context.Context, subject Subject) (Payload, bool, error) {
	if !supports(c.Provider, subject.Kind) {
		return nil, false, sharederrors.ErrKindMismatch
	}

	if payload, ok := c.cache.Get(c.ID(), subject.NormalizedValue()); ok {
		return payload, true, nil
	}

	payload, err := c.Provider.Query(ctx, subject)
	if err != nil {
		return nil, false, err
	}

	c.cache.Set(c.ID(), subject.NormalizedValue(), payload, c.TTL())
	return payload, false, nil
}

// cacheAware is implemented by providers that can report cache hits. The
// coordinator uses it to tag outcomes without a second cache lookup.
type cacheAware interface {
	QueryCached(ctx context.Context, subject Subject) (Payload, bool, error)
}
