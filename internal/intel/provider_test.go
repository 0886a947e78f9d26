package intel

import (
	"context"
	"errors"
	"testing"
	"time"

	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

func TestCached_KindMismatchRejected(t *testing.T) {
	cache := NewCache(NewMemoryStore())
	provider := Cached(&fakeProvider{id: "breach", kinds: []Kind{KindEmail}, payload: Payload{}}, cache)

	subject, _ := Classify("203.0.113.7", "ip")
	if _, err := provider.Query(context.Background(), subject); !errors.Is(err, sharederrors.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	cache := NewCache(NewMemoryStore())
	failing := &fakeProvider{id: "breach", kinds: []Kind{KindEmail}, err: errors.New("upstream down")}
	provider := Cached(failing, cache)

	subject := emailSubject(t)
	if _, err := provider.Query(context.Background(), subject); err == nil {
		t.Fatal("expected error from failing provider")
	}

	// The failure must not have populated the cache; a recovered provider
	// serves fresh data.
	if _, ok := cache.Get("breach", subject.NormalizedValue()); ok {
		t.Error("failed query must not populate the cache")
	}
}

func TestCached_PopulatesAndServes(t *testing.T) {
	cache := NewCache(NewMemoryStore())
	backing := &fakeProvider{id: "breach", kinds: []Kind{KindEmail}, payload: Payload{"found": true}}
	provider := Cached(backing, cache).(*cachedProvider)

	subject := emailSubject(t)

	payload, cached, err := provider.QueryCached(context.Background(), subject)
	if err != nil || cached {
		t.Fatalf("first query: payload=%v cached=%v err=%v", payload, cached, err)
	}

	// Break the backing provider; the cache must now answer.
	backing.err = errors.New("upstream down")
	payload, cached, err = provider.QueryCached(context.Background(), subject)
	if err != nil {
		t.Fatalf("cached query returned error: %v", err)
	}
	if !cached || !payload.Bool("found") {
		t.Errorf("expected cached payload, got cached=%v payload=%v", cached, payload)
	}
}

func TestCached_NilCachePassthrough(t *testing.T) {
	provider := &fakeProvider{id: "breach", kinds: []Kind{KindEmail}, payload: Payload{}, delay: 0, err: nil}
	if got := Cached(provider, nil); got != Provider(provider) {
		t.Error("nil cache must return the provider unchanged")
	}
}

func TestRegistry_OrderPreserved(t *testing.T) {
	registry := NewRegistry()
	ids := []string{"first", "second", "third"}
	for _, id := range ids {
		registry.Register(&fakeProvider{id: id, kinds: []Kind{KindDomain}, payload: Payload{}, delay: time.Millisecond})
	}

	providers := registry.For(KindDomain)
	if len(providers) != len(ids) {
		t.Fatalf("expected %d providers, got %d", len(ids), len(providers))
	}
	for i, p := range providers {
		if p.ID() != ids[i] {
			t.Errorf("slot %d: expected %s, got %s", i, ids[i], p.ID())
		}
	}

	if got := registry.For(KindPackage); len(got) != 0 {
		t.Errorf("unregistered kind must have no providers, got %d", len(got))
	}
}

func TestPayload_Getters(t *testing.T) {
	p := Payload{
		"b":  true,
		"f":  42.5,
		"i":  3,
		"s":  "hello",
		"ns": []string{"x"},
	}

	if !p.Bool("b") || p.Bool("missing") || p.Bool("s") {
		t.Error("Bool getter misbehaves")
	}
	if p.Float("f") != 42.5 || p.Float("i") != 3 || p.Float("missing") != 0 {
		t.Error("Float getter misbehaves")
	}
	if p.Int("f") != 42 {
		t.Error("Int getter should truncate")
	}
	if p.String("s") != "hello" || p.String("b") != "" {
		t.Error("String getter misbehaves")
	}
	if !p.Has("ns") || p.Has("missing") {
		t.Error("Has getter misbehaves")
	}

	var nilPayload Payload
	if nilPayload.Bool("x") || nilPayload.Has("x") || nilPayload.Clone() != nil {
		t.Error("nil payload must read as empty")
	}
}
