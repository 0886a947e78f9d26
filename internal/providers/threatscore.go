package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

const defaultThreatScoreBaseURL = "https://api.threatfeed.example/v1"

// ThreatScore queries a threat-intelligence feed for a numeric score on an
// IP or domain indicator.
//
// Payload fields: score (number 0-100), suspicious (bool),
// categories ([]string).
type ThreatScore struct {
	Transport intel.Transport
	BaseURL   string
	APIKey    string
	CacheTTL  time.Duration
}

func (t *ThreatScore) ID() string { return intel.ProviderThreatScore }

func (t *ThreatScore) Kinds() []intel.Kind {
	return []intel.Kind{intel.KindIP, intel.KindDomain}
}

func (t *ThreatScore) TTL() time.Duration {
	if t.CacheTTL > 0 {
		return t.CacheTTL
	}
	return 30 * time.Minute
}

type threatScoreResponse struct {
	Score      float64  `json:"score"`
	Suspicious bool     `json:"suspicious"`
	Categories []string `json:"categories"`
}

func (t *ThreatScore) Query(ctx context.Context, subject intel.Subject) (intel.Payload, error) {
	if subject.Kind != intel.KindIP && subject.Kind != intel.KindDomain {
		return nil, sharederrors.ErrKindMismatch
	}

	base := t.BaseURL
	if base == "" {
		base = defaultThreatScoreBaseURL
	}

	var decoded threatScoreResponse
	status, err := fetchJSON(ctx, t.Transport, intel.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/score?indicator=%s", base, url.QueryEscape(subject.NormalizedValue())),
		Header: authHeader(t.APIKey),
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return intel.Payload{"score": 0.0, "suspicious": false}, nil
	}

	return intel.Payload{
		"score":      decoded.Score,
		"suspicious": decoded.Suspicious,
		"categories": decoded.Categories,
	}, nil
}
