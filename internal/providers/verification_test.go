package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

func TestVerification_PayloadMapping(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(200, `{"deliverable":true,"disposable":true,"honeypot":false,"free_provider":true}`)
	}}
	provider := &Verification{Transport: transport, APIKey: "k"}

	payload, err := provider.Query(context.Background(), mustSubject(t, "a@example.com", "email"))
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if !payload.Bool("deliverable") || !payload.Bool("disposable") || payload.Bool("honeypot") || !payload.Bool("free") {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestVerification_NotFoundIsError(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(404, ``)
	}}
	provider := &Verification{Transport: transport, APIKey: "k"}

	payload, err := provider.Query(context.Background(), mustSubject(t, "a@example.com", "email"))
	if !errors.Is(err, sharederrors.ErrUpstreamStatus) {
		t.Fatalf("expected ErrUpstreamStatus, got payload=%v err=%v", payload, err)
	}
	if payload.Has("deliverable") {
		t.Error("a failed call must not fabricate deliverability data")
	}
}

func TestVerification_LookalikeSignal(t *testing.T) {
	testCases := []struct {
		name      string
		email     string
		lookalike bool
		imitating string
	}{
		{name: "Exact well-known domain", email: "a@gmail.com", lookalike: false},
		{name: "One-edit imitation", email: "a@gmial.com", lookalike: true, imitating: "gmail.com"},
		{name: "Two-edit imitation", email: "a@outl0ok.com", lookalike: true, imitating: "outlook.com"},
		{name: "Unrelated domain", email: "a@example.com", lookalike: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
				return jsonResponse(200, `{"deliverable":true}`)
			}}
			provider := &Verification{Transport: transport, APIKey: "k"}

			payload, err := provider.Query(context.Background(), mustSubject(t, tc.email, "email"))
			if err != nil {
				t.Fatalf("Query returned error: %v", err)
			}

			if payload.Bool("lookalike") != tc.lookalike {
				t.Errorf("expected lookalike=%v, got %v", tc.lookalike, payload.Bool("lookalike"))
			}
			if tc.imitating != "" && payload.String("lookalikeOf") != tc.imitating {
				t.Errorf("expected lookalikeOf=%s, got %s", tc.imitating, payload.String("lookalikeOf"))
			}
		})
	}
}
