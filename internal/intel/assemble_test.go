package intel

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAssemble_Shape(t *testing.T) {
	subject, _ := Classify("alice@example.com", "email")
	outcomes := []Outcome{
		{ProviderID: "breach", Status: StatusOK, Payload: Payload{"found": true}},
		{ProviderID: "reputation", Status: StatusTimeout, Message: "deadline exceeded"},
	}
	assessment := Assessment{Score: 40, Level: LevelMedium}
	recs := []string{"rotate credentials"}

	report := Assemble(subject, outcomes, assessment, recs)

	if report.Input != "alice@example.com" || report.Type != KindEmail {
		t.Errorf("unexpected subject fields: %s %s", report.Input, report.Type)
	}
	if report.RiskScore != 40 || report.RiskLevel != LevelMedium {
		t.Errorf("unexpected verdict: %d %s", report.RiskScore, report.RiskLevel)
	}
	if len(report.ProviderResults) != 2 {
		t.Errorf("expected 2 provider results, got %d", len(report.ProviderResults))
	}
	if report.ProviderResults["reputation"].Status != StatusTimeout {
		t.Error("timeout outcome must be present in providerResults, not dropped")
	}
	if len(report.Outcomes) != 2 || report.Outcomes[0].ProviderID != "breach" {
		t.Error("ordered outcomes must be preserved")
	}
	if report.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
}

func TestAssemble_Immutable(t *testing.T) {
	subject, _ := Classify("alice@example.com", "email")
	outcomes := []Outcome{{ProviderID: "breach", Status: StatusOK, Payload: Payload{}}}
	recs := []string{"original"}

	report := Assemble(subject, outcomes, Assessment{Score: 10, Level: LevelLow}, recs)

	// Mutating the inputs after assembly must not leak into the report.
	outcomes[0].ProviderID = "tampered"
	recs[0] = "tampered"

	if report.Outcomes[0].ProviderID != "breach" {
		t.Error("report outcomes were mutated through the input slice")
	}
	if report.Recommendations[0] != "original" {
		t.Error("report recommendations were mutated through the input slice")
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	subject, _ := Classify("alice@example.com", "email")
	outcomes := []Outcome{{ProviderID: "breach", Status: StatusOK, Payload: Payload{"found": true}}}
	assessment := Assessment{Score: 40, Level: LevelMedium}
	recs := []string{"rotate credentials"}

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := assembleAt(subject, outcomes, assessment, recs, at)
	second := assembleAt(subject, outcomes, assessment, recs, at)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("assembly is not idempotent:\n%s\n%s", a, b)
	}
}

func TestReport_JSONContract(t *testing.T) {
	subject, _ := Classify("alice@example.com", "email")
	report := assembleAt(subject,
		[]Outcome{{ProviderID: "breach", Status: StatusOK, Payload: Payload{"found": true}}},
		Assessment{Score: 40, Level: LevelMedium},
		[]string{"rotate credentials"},
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, field := range []string{"input", "type", "providerResults", "riskScore", "riskLevel", "recommendations", "timestamp"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("response contract missing field %q", field)
		}
	}
	if _, ok := decoded["outcomes"]; ok {
		t.Error("ordered outcomes are programmatic only, not part of the wire contract")
	}
}
