// Package providers contains the ProviderClient implementations: one per
// external data source, each projecting its provider-native schema into the
// common payload fields the scorer understands. Providers only talk through
// the intel.Transport abstraction so the whole set can be exercised with
// fakes in tests.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/riskfuse/riskfuse/internal/intel"
	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

// fetchJSON performs one transport call and decodes a 2xx JSON body into
// out. A 404 is returned undecoded so providers can map it to a normal
// "not found" payload. Every other non-2xx status is an upstream failure;
// a zero-valued struct must never masquerade as real provider data.
func fetchJSON(ctx context.Context, t intel.Transport, req intel.Request, out any) (int, error) {
	resp, err := t.Do(ctx, req)
	if err != nil {
		return 0, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, fmt.Errorf("%w: authentication rejected (status %d)", sharederrors.ErrUpstreamStatus, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return resp.StatusCode, fmt.Errorf("%w: status %d", sharederrors.ErrUpstreamStatus, resp.StatusCode)
	default:
		if out != nil {
			if err := json.Unmarshal(resp.Body, out); err != nil {
				return resp.StatusCode, fmt.Errorf("%w: %v", sharederrors.ErrMalformedResponse, err)
			}
		}
	}

	return resp.StatusCode, nil
}

// notFoundErr is returned by providers that have no normal interpretation
// for a 404 from their upstream.
func notFoundErr() error {
	return fmt.Errorf("%w: status %d", sharederrors.ErrUpstreamStatus, http.StatusNotFound)
}

func authHeader(apiKey string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	if apiKey != "" {
		h.Set("X-Api-Key", apiKey)
	}
	return h
}
