package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

func TestThreatScore_PayloadMapping(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(200, `{"score":82,"suspicious":true,"categories":["scanner","botnet"]}`)
	}}
	provider := &ThreatScore{Transport: transport}

	payload, err := provider.Query(context.Background(), mustSubject(t, "203.0.113.7", "ip"))
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if payload.Float("score") != 82 || !payload.Bool("suspicious") {
		t.Errorf("unexpected payload: %v", payload)
	}
	categories, _ := payload["categories"].([]string)
	if len(categories) != 2 {
		t.Errorf("categories lost in normalization: %v", payload["categories"])
	}
}

func TestThreatScore_UnknownIndicator(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(404, ``)
	}}
	provider := &ThreatScore{Transport: transport}

	payload, err := provider.Query(context.Background(), mustSubject(t, "example.com", "domain"))
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if payload.Float("score") != 0 || payload.Bool("suspicious") {
		t.Errorf("expected neutral payload, got %v", payload)
	}
}

func TestThreatScore_RejectsEmail(t *testing.T) {
	provider := &ThreatScore{Transport: &fakeTransport{}}

	_, err := provider.Query(context.Background(), mustSubject(t, "a@example.com", "email"))
	if !errors.Is(err, sharederrors.ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
}

func TestThreatScore_UpstreamFailure(t *testing.T) {
	transport := &fakeTransport{respond: func(req intel.Request) (*intel.Response, error) {
		return jsonResponse(503, ``)
	}}
	provider := &ThreatScore{Transport: transport}

	_, err := provider.Query(context.Background(), mustSubject(t, "203.0.113.7", "ip"))
	if !errors.Is(err, sharederrors.ErrUpstreamStatus) {
		t.Errorf("expected ErrUpstreamStatus, got %v", err)
	}
}
