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

const defaultBreachBaseURL = "https://api.breachdirectory.example/v1"

// Breach looks an email address up in a breach directory.
//
// Payload fields: found (bool), count (number), sources ([]string).
// A 404 from the directory is a normal "not found" payload, not an error.
type Breach struct {
	Transport intel.Transport
	BaseURL   string
	APIKey    string
	CacheTTL  time.Duration
}

func (b *Breach) ID() string          { return intel.ProviderBreach }
func (b *Breach) Kinds() []intel.Kind { return []intel.Kind{intel.KindEmail} }

func (b *Breach) TTL() time.Duration {
	if b.CacheTTL > 0 {
		return b.CacheTTL
	}
	// Breach data moves slowly; cache generously.
	return 6 * time.Hour
}

type breachResponse struct {
	Total    int `json:"total"`
	Breaches []struct {
		Name   string `json:"name"`
		Domain string `json:"domain"`
	} `json:"breaches"`
}

func (b *Breach) Query(ctx context.Context, subject intel.Subject) (intel.Payload, error) {
	if subject.Kind != intel.KindEmail {
		return nil, sharederrors.ErrKindMismatch
	}
	if b.APIKey == "" {
		return nil, fmt.Errorf("%w: breach directory API key missing", sharederrors.ErrNotConfigured)
	}

	base := b.BaseURL
	if base == "" {
		base = defaultBreachBaseURL
	}

	var decoded breachResponse
	status, err := fetchJSON(ctx, b.Transport, intel.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/breaches?email=%s", base, url.QueryEscape(subject.NormalizedValue())),
		Header: authHeader(b.APIKey),
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return intel.Payload{"found": false, "count": 0}, nil
	}

	count := decoded.Total
	if count == 0 {
		count = len(decoded.Breaches)
	}
	sources := make([]string, 0, len(decoded.Breaches))
	for _, br := range decoded.Breaches {
		sources = append(sources, br.Name)
	}

	return intel.Payload{
		"found":   count > 0,
		"count":   count,
		"sources": sources,
	}, nil
}
