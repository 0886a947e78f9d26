package intel

import (
	"reflect"
	"testing"
)

func factorOn(id string, weight int, providerID string) Factor {
	return Factor{
		ID:      id,
		Weight:  weight,
		Message: id + " triggered",
		When: func(outcomes []Outcome) bool {
			o, ok := ByProvider(outcomes, providerID)
			return ok && o.Payload.Bool("flag")
		},
	}
}

func TestLevelFor_Thresholds(t *testing.T) {
	testCases := []struct {
		score    int
		expected Level
	}{
		{score: 0, expected: LevelLow},
		{score: 24, expected: LevelLow},
		{score: 25, expected: LevelMedium},
		{score: 49, expected: LevelMedium},
		{score: 50, expected: LevelHigh},
		{score: 74, expected: LevelHigh},
		{score: 75, expected: LevelCritical},
		{score: 100, expected: LevelCritical},
	}

	for _, tc := range testCases {
		if got := LevelFor(tc.score); got != tc.expected {
			t.Errorf("LevelFor(%d): expected %s, got %s", tc.score, tc.expected, got)
		}
	}
}

func TestScorer_SumsTriggeredWeights(t *testing.T) {
	scorer := NewScorer([]Factor{
		factorOn("a", 10, "p1"),
		factorOn("b", 20, "p2"),
		factorOn("c", 40, "p3"),
	})

	outcomes := []Outcome{
		{ProviderID: "p1", Status: StatusOK, Payload: Payload{"flag": true}},
		{ProviderID: "p2", Status: StatusOK, Payload: Payload{"flag": false}},
		{ProviderID: "p3", Status: StatusOK, Payload: Payload{"flag": true}},
	}

	assessment := scorer.Score(outcomes)
	if assessment.Score != 50 {
		t.Errorf("expected score 50, got %d", assessment.Score)
	}
	if assessment.Level != LevelHigh {
		t.Errorf("expected high, got %s", assessment.Level)
	}
	if len(assessment.Triggered) != 2 {
		t.Errorf("expected 2 triggered factors, got %d", len(assessment.Triggered))
	}
}

func TestScorer_ClampsToHundred(t *testing.T) {
	scorer := NewScorer([]Factor{
		factorOn("a", 60, "p1"),
		factorOn("b", 60, "p1"),
	})
	outcomes := []Outcome{{ProviderID: "p1", Status: StatusOK, Payload: Payload{"flag": true}}}

	if got := scorer.Score(outcomes).Score; got != 100 {
		t.Errorf("expected clamp to 100, got %d", got)
	}
}

func TestScorer_ErrorOutcomesAreNeutral(t *testing.T) {
	scorer := NewScorer([]Factor{factorOn("a", 40, "p1")})

	outcomes := []Outcome{
		// Payload present but status error: the factor must not trigger.
		{ProviderID: "p1", Status: StatusError, Payload: Payload{"flag": true}, Message: "timed out"},
	}

	assessment := scorer.Score(outcomes)
	if assessment.Score != 0 {
		t.Errorf("absent data must not add weight, got score %d", assessment.Score)
	}
	if assessment.Level != LevelLow {
		t.Errorf("expected low, got %s", assessment.Level)
	}
}

func TestScorer_Monotonicity(t *testing.T) {
	outcomes := []Outcome{
		{ProviderID: "p1", Status: StatusOK, Payload: Payload{"flag": true}},
		{ProviderID: "p2", Status: StatusOK, Payload: Payload{"flag": true}},
	}

	base := NewScorer([]Factor{factorOn("a", 30, "p1")}).Score(outcomes)

	// Adding any additional triggered factor never decreases the score.
	extended := NewScorer([]Factor{
		factorOn("a", 30, "p1"),
		factorOn("b", 15, "p2"),
	}).Score(outcomes)

	if extended.Score < base.Score {
		t.Errorf("score decreased from %d to %d after adding a factor", base.Score, extended.Score)
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer(DefaultFactors())
	outcomes := []Outcome{
		{ProviderID: ProviderBreach, Status: StatusOK, Payload: Payload{"found": true, "count": 7}},
		{ProviderID: ProviderReputation, Status: StatusTimeout, Message: "deadline exceeded"},
		{ProviderID: ProviderVerification, Status: StatusOK, Payload: Payload{"disposable": true}},
	}

	first := scorer.Score(outcomes)
	second := scorer.Score(outcomes)

	if first.Score != second.Score || first.Level != second.Level {
		t.Fatalf("scoring is not deterministic: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(Recommend(first.Triggered), Recommend(second.Triggered)) {
		t.Error("recommendation ordering is not deterministic")
	}
}

func TestScorer_PanickingPredicateDoesNotTrigger(t *testing.T) {
	scorer := NewScorer([]Factor{
		{
			ID:     "broken",
			Weight: 50,
			When: func(outcomes []Outcome) bool {
				panic("bad rule")
			},
		},
		factorOn("fine", 10, "p1"),
	})

	outcomes := []Outcome{{ProviderID: "p1", Status: StatusOK, Payload: Payload{"flag": true}}}

	assessment := scorer.Score(outcomes)
	if assessment.Score != 10 {
		t.Errorf("panicking rule must be non-triggering, got score %d", assessment.Score)
	}
}

func TestScorer_NilPredicateSkipped(t *testing.T) {
	scorer := NewScorer([]Factor{{ID: "empty", Weight: 50}})
	if got := scorer.Score(nil).Score; got != 0 {
		t.Errorf("factor without predicate must not trigger, got %d", got)
	}
}

func TestScorer_NegativeTotalClampsToZero(t *testing.T) {
	scorer := NewScorer([]Factor{
		{
			ID:     "mitigating",
			Weight: -20,
			When:   func(outcomes []Outcome) bool { return true },
		},
	})
	if got := scorer.Score(nil).Score; got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}
