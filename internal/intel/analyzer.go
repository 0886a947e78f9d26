package intel

import (
	"context"

	"go.uber.org/zap"

	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

// Analyzer ties the pipeline together: classify, fan out, score, recommend,
// assemble. One Analyzer is shared across requests; the response cache is
// the only mutable state behind it.
type Analyzer struct {
	registry    *Registry
	coordinator *Coordinator
	scorer      *Scorer
	logger      *zap.Logger
}

func NewAnalyzer(registry *Registry, coordinator *Coordinator, scorer *Scorer, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if coordinator.Logger == nil {
		coordinator.Logger = logger
	}
	return &Analyzer{
		registry:    registry,
		coordinator: coordinator,
		scorer:      scorer,
		logger:      logger,
	}
}

// Factors exposes the configured scoring rule table.
func (a *Analyzer) Factors() []Factor {
	return a.scorer.Factors()
}

// Analyze runs the full pipeline for one raw input. Only classification can
// fail; every provider-level failure is folded into the report.
func (a *Analyzer) Analyze(ctx context.Context, value, kindHint string) (*Report, error) {
	subject, err := Classify(value, kindHint)
	if err != nil {
		return nil, err
	}

	providers := a.registry.For(subject.Kind)
	if len(providers) == 0 {
		return nil, sharederrors.ErrNoProviders
	}

	outcomes := a.coordinator.Run(ctx, subject, providers)
	assessment := a.scorer.Score(outcomes)
	recommendations := Recommend(assessment.Triggered)
	report := Assemble(subject, outcomes, assessment, recommendations)

	a.logger.Info("subject_analyzed",
		zap.String("kind", string(subject.Kind)),
		zap.Int("providers", len(providers)),
		zap.Int("risk_score", report.RiskScore),
		zap.String("risk_level", string(report.RiskLevel)),
	)

	return report, nil
}
