package intel

// Level is the categorical risk verdict derived from the numeric score.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Factor is one declarative scoring rule: a predicate over the outcome list,
// a weight added when it matches, and the advisory message it carries.
// Factors are stateless configuration loaded once at startup.
type Factor struct {
	ID      string
	Weight  int
	Message string
	When    func(outcomes []Outcome) bool
}

// Assessment is the scorer's verdict for one outcome list.
type Assessment struct {
	Score     int
	Level     Level
	Triggered []Factor
}

// Scorer evaluates the configured factor table against an outcome list.
// It is a pure function of its input: no ordering dependency between
// factors, no hidden state, and it never fails. A predicate that panics
// simply does not trigger.
type Scorer struct {
	factors []Factor
}

func NewScorer(factors []Factor) *Scorer {
	owned := make([]Factor, len(factors))
	copy(owned, factors)
	return &Scorer{factors: owned}
}

// Factors returns the configured rule table in evaluation order.
func (s *Scorer) Factors() []Factor {
	out := make([]Factor, len(s.factors))
	copy(out, s.factors)
	return out
}

// Score sums the weights of every triggered factor and clamps to [0,100].
// Outcomes with a non-ok status carry no payload, so their factors cannot
// trigger; absence of data never adds or subtracts weight.
func (s *Scorer) Score(outcomes []Outcome) Assessment {
	score := 0
	var triggered []Factor
	for _, factor := range s.factors {
		if factor.When == nil {
			continue
		}
		if !safeEval(factor, outcomes) {
			continue
		}
		score += factor.Weight
		triggered = append(triggered, factor)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Assessment{Score: score, Level: LevelFor(score), Triggered: triggered}
}

// safeEval runs a predicate, treating a panic as "did not trigger" so the
// scorer itself can never throw.
func safeEval(factor Factor, outcomes []Outcome) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return factor.When(outcomes)
}

// LevelFor maps a clamped score onto the fixed threshold table.
func LevelFor(score int) Level {
	switch {
	case score < 25:
		return LevelLow
	case score < 50:
		return LevelMedium
	case score < 75:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// ByProvider finds the outcome slot for a provider ID. The second return is
// false when the provider produced no usable payload (missing, error, or
// timeout), which keeps factor predicates short.
func ByProvider(outcomes []Outcome, providerID string) (Outcome, bool) {
	for _, o := range outcomes {
		if o.ProviderID == providerID {
			return o, o.OK()
		}
	}
	return Outcome{}, false
}

// AnyPayload reports whether any ok outcome's payload satisfies the check.
func AnyPayload(outcomes []Outcome, check func(Payload) bool) bool {
	for _, o := range outcomes {
		if o.OK() && check(o.Payload) {
			return true
		}
	}
	return false
}
