package intel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	sharederrors "github.com/riskfuse/riskfuse/internal/shared/errors"
)

// Coordinator drives the concurrent fan-out for a single subject: one
// goroutine per provider, a bounded per-call timeout, and an overall
// deadline for the whole aggregation. Output slots follow provider
// registration order regardless of completion order, and a failing provider
// never blocks or cancels its siblings.
type Coordinator struct {
	// PerCallTimeout bounds each provider call. Zero means the caller's
	// context deadline is the only bound.
	PerCallTimeout time.Duration

	// OverallTimeout bounds the whole fan-out. When it fires mid-flight,
	// unfinished slots are recorded as timeouts and the stragglers are
	// abandoned.
	OverallTimeout time.Duration

	Logger *zap.Logger
}

const deadlineMessage = "aggregation deadline exceeded"

// Run invokes every provider concurrently and returns one Outcome per
// provider, in input order. It never returns an error: provider failures
// are folded into their slots.
func (c *Coordinator) Run(ctx context.Context, subject Subject, providers []Provider) []Outcome {
	outcomes := make([]Outcome, len(providers))
	if len(providers) == 0 {
		return outcomes
	}

	overallCtx := ctx
	if c.OverallTimeout > 0 {
		var cancel context.CancelFunc
		overallCtx, cancel = context.WithTimeout(ctx, c.OverallTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	written := make([]bool, len(providers))
	var wg sync.WaitGroup

	for i, p := range providers {
		wg.Add(1)
		go func(slot int, p Provider) {
			defer wg.Done()
			outcome := c.call(overallCtx, subject, p)
			mu.Lock()
			if !written[slot] {
				outcomes[slot] = outcome
				written[slot] = true
			}
			mu.Unlock()
		}(i, p)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-overallCtx.Done():
		// Deadline fired mid-fan-out: fill the unfinished slots and walk
		// away. Stragglers find written[slot] set and discard themselves.
		mu.Lock()
		for i, p := range providers {
			if !written[i] {
				outcomes[i] = Outcome{ProviderID: p.ID(), Status: StatusTimeout, Message: deadlineMessage}
				written[i] = true
			}
		}
		mu.Unlock()
		if c.Logger != nil {
			c.Logger.Warn("fanout_deadline_exceeded",
				zap.String("subject_kind", string(subject.Kind)),
				zap.Duration("overall_timeout", c.OverallTimeout),
			)
		}
	}

	return outcomes
}

func (c *Coordinator) call(ctx context.Context, subject Subject, p Provider) (outcome Outcome) {
	// A panicking provider must not take the request down with it.
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{
				ProviderID: p.ID(),
				Status:     StatusError,
				Message:    fmt.Sprintf("provider panic: %v", r),
			}
		}
	}()

	callCtx := ctx
	if c.PerCallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.PerCallTimeout)
		defer cancel()
	}

	start := time.Now()
	var (
		payload Payload
		cached  bool
		err     error
	)
	if ca, ok := p.(cacheAware); ok {
		payload, cached, err = ca.QueryCached(callCtx, subject)
	} else {
		payload, err = p.Query(callCtx, subject)
	}

	if c.Logger != nil {
		c.Logger.Debug("provider_call",
			zap.String("provider", p.ID()),
			zap.Duration("duration", time.Since(start)),
			zap.Bool("cached", cached),
			zap.Error(err),
		)
	}

	if err != nil {
		status := StatusError
		if errors.Is(err, sharederrors.ErrTransportTimeout) || errors.Is(err, context.DeadlineExceeded) {
			status = StatusTimeout
		}
		return Outcome{ProviderID: p.ID(), Status: status, Message: err.Error()}
	}

	return Outcome{ProviderID: p.ID(), Status: StatusOK, Payload: payload, Cached: cached}
}
