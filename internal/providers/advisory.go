package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

const defaultAdvisoryBaseURL = "https://api.osv.dev"

// Advisory queries a vulnerability advisory database (OSV-style query API)
// for a package subject ("ecosystem/name").
//
// Payload fields: found (bool), vulnerabilities (number), maxSeverity
// (string: low|medium|high|critical), ids ([]string).
type Advisory struct {
	Transport intel.Transport
	BaseURL   string
	CacheTTL  time.Duration
}

func (a *Advisory) ID() string          { return intel.ProviderAdvisory }
func (a *Advisory) Kinds() []intel.Kind { return []intel.Kind{intel.KindPackage} }

func (a *Advisory) TTL() time.Duration {
	if a.CacheTTL > 0 {
		return a.CacheTTL
	}
	return 3 * time.Hour
}

// severityRank orders advisory severities; higher outranks lower.
var severityRank = map[string]int{
	"low":      1,
	"moderate": 2,
	"medium":   2,
	"high":     3,
	"critical": 4,
}

var rankName = map[int]string{1: "low", 2: "medium", 3: "high", 4: "critical"}

type advisoryQuery struct {
	Package struct {
		Ecosystem string `json:"ecosystem"`
		Name      string `json:"name"`
	} `json:"package"`
}

type advisoryResponse struct {
	Vulns []struct {
		ID       string `json:"id"`
		Severity string `json:"severity"`
		Database struct {
			Severity string `json:"severity"`
		} `json:"database_specific"`
	} `json:"vulns"`
}

func (a *Advisory) Query(ctx context.Context, subject intel.Subject) (intel.Payload, error) {
	if subject.Kind != intel.KindPackage {
		return nil, sharederrors.ErrKindMismatch
	}

	ecosystem, name := subject.Ecosystem()
	if ecosystem == "" || name == "" {
		return nil, fmt.Errorf("%w: package reference must be ecosystem/name", sharederrors.ErrUnclassifiableSubject)
	}

	var query advisoryQuery
	query.Package.Ecosystem = ecosystem
	query.Package.Name = name
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrMalformedResponse, err)
	}

	base := a.BaseURL
	if base == "" {
		base = defaultAdvisoryBaseURL
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")

	var decoded advisoryResponse
	status, err := fetchJSON(ctx, a.Transport, intel.Request{
		Method: http.MethodPost,
		URL:    base + "/v1/query",
		Header: header,
		Body:   body,
	}, &decoded)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// The query endpoint reports unknown packages with an empty vulns
		// list, never a 404.
		return nil, notFoundErr()
	}

	maxRank := 0
	ids := make([]string, 0, len(decoded.Vulns))
	for _, vuln := range decoded.Vulns {
		ids = append(ids, vuln.ID)
		severity := vuln.Severity
		if severity == "" {
			severity = vuln.Database.Severity
		}
		if rank := severityRank[strings.ToLower(severity)]; rank > maxRank {
			maxRank = rank
		}
	}

	payload := intel.Payload{
		"found":           len(decoded.Vulns) > 0,
		"vulnerabilities": len(decoded.Vulns),
		"ids":             ids,
	}
	if maxRank > 0 {
		payload["maxSeverity"] = rankName[maxRank]
	}
	return payload, nil
}
