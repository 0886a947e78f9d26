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

const defaultReputationBaseURL = "https://api.ipreputation.example/v1"

// Reputation queries a fraud/abuse reputation service. For email subjects
// the lookup target is the address's registrable domain.
//
// Payload fields: fraudScore (number), recentAbuse, proxy, vpn, tor,
// suspicious (bools).
type Reputation struct {
	Transport intel.Transport
	BaseURL   string
	APIKey    string
	CacheTTL  time.Duration
}

func (r *Reputation) ID() string { return intel.ProviderReputation }

func (r *Reputation) Kinds() []intel.Kind {
	return []intel.Kind{intel.KindEmail, intel.KindIP, intel.KindDomain}
}

func (r *Reputation) TTL() time.Duration {
	if r.CacheTTL > 0 {
		return r.CacheTTL
	}
	return 2 * time.Hour
}

type reputationResponse struct {
	FraudScore  float64 `json:"fraud_score"`
	RecentAbuse bool    `json:"recent_abuse"`
	Proxy       bool    `json:"proxy"`
	VPN         bool    `json:"vpn"`
	Tor         bool    `json:"tor"`
	Suspicious  bool    `json:"suspicious"`
}

func (r *Reputation) Query(ctx context.Context, subject intel.Subject) (intel.Payload, error) {
	if !kindSupported(r, subject.Kind) {
		return nil, sharederrors.ErrKindMismatch
	}
	if r.APIKey == "" {
		return nil, fmt.Errorf("%w: reputation API key missing", sharederrors.ErrNotConfigured)
	}

	target := subject.NormalizedValue()
	if subject.Kind == intel.KindEmail {
		target = subject.Domain
	}

	base := r.BaseURL
	if base == "" {
		base = defaultReputationBaseURL
	}

	var decoded reputationResponse
	status, err := fetchJSON(ctx, r.Transport, intel.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/reputation?target=%s", base, url.QueryEscape(target)),
		Header: authHeader(r.APIKey),
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// Unknown to the reputation service: clean slate, not a failure.
		return intel.Payload{"fraudScore": 0.0, "recentAbuse": false}, nil
	}

	return intel.Payload{
		"fraudScore":  decoded.FraudScore,
		"recentAbuse": decoded.RecentAbuse,
		"proxy":       decoded.Proxy,
		"vpn":         decoded.VPN,
		"tor":         decoded.Tor,
		"suspicious":  decoded.Suspicious,
	}, nil
}

func kindSupported(p intel.Provider, kind intel.Kind) bool {
	for _, k := range p.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
