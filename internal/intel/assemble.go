package intel

import "time"

// Report is the immutable aggregate produced for one analyzed subject.
// Its JSON form is the flat response contract consumed by the surrounding
// application: provider outcomes keyed by provider ID, plus the verdict.
// The ordered outcome list stays available programmatically.
type Report struct {
	Input           string             `json:"input"`
	Type            Kind               `json:"type"`
	ProviderResults map[string]Outcome `json:"providerResults"`
	RiskScore       int                `json:"riskScore"`
	RiskLevel       Level              `json:"riskLevel"`
	Recommendations []string           `json:"recommendations"`
	Timestamp       time.Time          `json:"timestamp"`

	// Outcomes preserves provider registration order; the JSON map cannot.
	Outcomes []Outcome `json:"-"`
}

// Assemble composes the final report from the pipeline pieces. It is a pure
// function of its inputs apart from reading the clock: calling it again with
// the same inputs yields an equivalent report.
func Assemble(subject Subject, outcomes []Outcome, assessment Assessment, recommendations []string) *Report {
	return assembleAt(subject, outcomes, assessment, recommendations, time.Now().UTC())
}

func assembleAt(subject Subject, outcomes []Outcome, assessment Assessment, recommendations []string, at time.Time) *Report {
	byID := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		byID[o.ProviderID] = o
	}

	ordered := make([]Outcome, len(outcomes))
	copy(ordered, outcomes)

	recs := make([]string, len(recommendations))
	copy(recs, recommendations)

	return &Report{
		Input:           subject.Value,
		Type:            subject.Kind,
		ProviderResults: byID,
		RiskScore:       assessment.Score,
		RiskLevel:       assessment.Level,
		Recommendations: recs,
		Timestamp:       at,
		Outcomes:        ordered,
	}
}
