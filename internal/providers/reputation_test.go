package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/riskfuse/riskfuse/internal/intel"
)

func TestReputation_PayloadMapping(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(200, `{"fraud_score":88,"recent_abuse":true,"proxy":true,"vpn":false,"tor":false,"suspicious":true}`)
	}}
	provider := &Reputation{Transport: transport, APIKey: "k"}

	payload, err := provider.Query(context.Background(), mustSubject(t, "203.0.113.7", "ip"))
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if payload.Float("fraudScore") != 88 {
		t.Errorf("expected fraudScore 88, got %v", payload.Float("fraudScore"))
	}
	if !payload.Bool("recentAbuse") || !payload.Bool("proxy") || !payload.Bool("suspicious") {
		t.Errorf("boolean flags lost in normalization: %v", payload)
	}
	if payload.Bool("vpn") || payload.Bool("tor") {
		t.Errorf("false flags flipped: %v", payload)
	}
}

func TestReputation_EmailLooksUpRegistrableDomain(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(200, `{"fraud_score":0}`)
	}}
	provider := &Reputation{Transport: transport, APIKey: "k"}

	_, err := provider.Query(context.Background(), mustSubject(t, "alice@mail.example.com", "email"))
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if !strings.Contains(transport.requests[0].URL, "target=example.com") {
		t.Errorf("email subjects should be looked up by registrable domain, got %s", transport.requests[0].URL)
	}
}

func TestReputation_UnknownTargetIsCleanSlate(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(404, ``)
	}}
	provider := &Reputation{Transport: transport, APIKey: "k"}

	payload, err := provider.Query(context.Background(), mustSubject(t, "203.0.113.7", "ip"))
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if payload.Bool("recentAbuse") || payload.Float("fraudScore") != 0 {
		t.Errorf("expected clean payload, got %v", payload)
	}
}
