package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

const defaultVerificationBaseURL = "https://api.mailverify.example/v2"

// wellKnownMailDomains are the imitation targets checked by the lookalike
// signal. A registrable domain within edit distance 1-2 of one of these
// (but not equal) is flagged.
var wellKnownMailDomains = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"icloud.com",
	"proton.me",
	"protonmail.com",
	"aol.com",
	"zoho.com",
}

// Verification checks deliverability and abuse signals for an email address.
//
// Payload fields: deliverable, disposable, honeypot, free (bools), plus the
// locally computed lookalike (bool) and lookalikeOf (string) fields.
type Verification struct {
	Transport intel.Transport
	BaseURL   string
	APIKey    string
	CacheTTL  time.Duration
}

func (v *Verification) ID() string          { return intel.ProviderVerification }
func (v *Verification) Kinds() []intel.Kind { return []intel.Kind{intel.KindEmail} }

func (v *Verification) TTL() time.Duration {
	if v.CacheTTL > 0 {
		return v.CacheTTL
	}
	return time.Hour
}

type verificationResponse struct {
	Deliverable bool `json:"deliverable"`
	Disposable  bool `json:"disposable"`
	Honeypot    bool `json:"honeypot"`
	FreeMail    bool `json:"free_provider"`
}

func (v *Verification) Query(ctx context.Context, subject intel.Subject) (intel.Payload, error) {
	if subject.Kind != intel.KindEmail {
		return nil, sharederrors.ErrKindMismatch
	}
	if v.APIKey == "" {
		return nil, fmt.Errorf("%w: verification API key missing", sharederrors.ErrNotConfigured)
	}

	base := v.BaseURL
	if base == "" {
		base = defaultVerificationBaseURL
	}

	var decoded verificationResponse
	status, err := fetchJSON(ctx, v.Transport, intel.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/verify?email=%s", base, url.QueryEscape(subject.NormalizedValue())),
		Header: authHeader(v.APIKey),
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// The verify endpoint always answers for a syntactically valid
		// address; a 404 means the upstream is broken, not "unknown".
		return nil, notFoundErr()
	}

	payload := intel.Payload{
		"deliverable": decoded.Deliverable,
		"disposable":  decoded.Disposable,
		"honeypot":    decoded.Honeypot,
		"free":        decoded.FreeMail,
		"lookalike":   false,
	}
	if target := lookalikeTarget(subject.Domain); target != "" {
		payload["lookalike"] = true
		payload["lookalikeOf"] = target
	}
	return payload, nil
}

// lookalikeTarget returns the well-known domain the given registrable domain
// imitates, or "" when it matches one exactly or resembles none.
func lookalikeTarget(domain string) string {
	if domain == "" {
		return ""
	}
	for _, known := range wellKnownMailDomains {
		if domain == known {
			return ""
		}
	}
	best := ""
	bestDistance := 3
	for _, known := range wellKnownMailDomains {
		if d := levenshtein.ComputeDistance(domain, known); d < bestDistance {
			best = known
			bestDistance = d
		}
	}
	return best
}
