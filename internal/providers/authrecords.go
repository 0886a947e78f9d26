package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

const defaultDoHBaseURL = "https://cloudflare-dns.com/dns-query"

// AuthRecords inspects a domain's mail authentication posture via
// DNS-over-HTTPS: SPF (TXT), DMARC (TXT at _dmarc.) and MX presence.
// Email subjects are resolved against their registrable domain.
//
// Payload fields: spf, dmarc, mx (bools), spfRecord, dmarcRecord (strings).
type AuthRecords struct {
	Transport intel.Transport
	BaseURL   string
	CacheTTL  time.Duration
}

func (a *AuthRecords) ID() string { return intel.ProviderAuthRecords }

func (a *AuthRecords) Kinds() []intel.Kind {
	return []intel.Kind{intel.KindEmail, intel.KindDomain}
}

func (a *AuthRecords) TTL() time.Duration {
	if a.CacheTTL > 0 {
		return a.CacheTTL
	}
	// DNS answers are volatile; keep the cache window short.
	return 5 * time.Minute
}

type dohResponse struct {
	Status int `json:"Status"`
	Answer []struct {
		Type int    `json:"type"`
		Data string `json:"data"`
	} `json:"Answer"`
}

func (a *AuthRecords) Query(ctx context.Context, subject intel.Subject) (intel.Payload, error) {
	if subject.Kind != intel.KindEmail && subject.Kind != intel.KindDomain {
		return nil, sharederrors.ErrKindMismatch
	}

	domain := subject.Domain
	if domain == "" {
		domain = subject.NormalizedValue()
	}

	spfRecord, err := a.findTXT(ctx, domain, "v=spf1")
	if err != nil {
		return nil, err
	}
	dmarcRecord, err := a.findTXT(ctx, "_dmarc."+domain, "v=dmarc1")
	if err != nil {
		return nil, err
	}
	hasMX, err := a.hasAnswer(ctx, domain, "MX")
	if err != nil {
		return nil, err
	}

	payload := intel.Payload{
		"spf":   spfRecord != "",
		"dmarc": dmarcRecord != "",
		"mx":    hasMX,
	}
	if spfRecord != "" {
		payload["spfRecord"] = spfRecord
	}
	if dmarcRecord != "" {
		payload["dmarcRecord"] = dmarcRecord
	}
	return payload, nil
}

// findTXT returns the first TXT record at name starting with prefix
// (case-insensitive), or "" when none exists.
func (a *AuthRecords) findTXT(ctx context.Context, name, prefix string) (string, error) {
	decoded, err := a.resolve(ctx, name, "TXT")
	if err != nil {
		return "", err
	}
	for _, answer := range decoded.Answer {
		record := strings.Trim(answer.Data, `"`)
		if strings.HasPrefix(strings.ToLower(record), prefix) {
			return record, nil
		}
	}
	return "", nil
}

func (a *AuthRecords) hasAnswer(ctx context.Context, name, recordType string) (bool, error) {
	decoded, err := a.resolve(ctx, name, recordType)
	if err != nil {
		return false, err
	}
	return len(decoded.Answer) > 0, nil
}

func (a *AuthRecords) resolve(ctx context.Context, name, recordType string) (*dohResponse, error) {
	base := a.BaseURL
	if base == "" {
		base = defaultDoHBaseURL
	}

	header := http.Header{}
	header.Set("Accept", "application/dns-json")

	var decoded dohResponse
	status, err := fetchJSON(ctx, a.Transport, intel.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s?name=%s&type=%s", base, url.QueryEscape(name), recordType),
		Header: header,
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// DoH resolvers signal NXDOMAIN inside the JSON body, never via 404.
		return nil, notFoundErr()
	}
	return &decoded, nil
}
