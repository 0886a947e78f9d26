package intel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

// Request is the transport-level view of one provider call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response carries the raw upstream answer back to the provider for
// normalization.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport abstracts the HTTP stack so provider clients never depend on a
// concrete one and the aggregation core is testable without network access.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// HTTPTransport is the production Transport. The per-call deadline comes
// from the caller's context; an optional rate limiter throttles outbound
// calls across all providers sharing the transport.
type HTTPTransport struct {
	Client  *http.Client
	Limiter *rate.Limiter
	// MaxBodyBytes caps how much of an upstream body is read. Zero means
	// the default of 4 MiB.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 4 << 20

func NewHTTPTransport(timeout time.Duration, rps int) *HTTPTransport {
	t := &HTTPTransport{
		Client: &http.Client{Timeout: timeout},
	}
	if rps > 0 {
		t.Limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return t
}

func (t *HTTPTransport) Do(ctx context.Context, req Request) (*Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, classifyTransportErr(err)
		}
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrTransport, err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := t.Client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	limit := t.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, classifyTransportErr(err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// classifyTransportErr folds Go's layered timeout errors into the two
// sentinel classes the coordinator distinguishes.
func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", sharederrors.ErrTransportTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", sharederrors.ErrTransportTimeout, err)
	}
	return fmt.Errorf("%w: %v", sharederrors.ErrTransport, err)
}
