package target

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"catalog-sync/core/source"

	"go.uber.org/zap"
)

// throttleBuffer is added on top of the computed restore wait so the
// retry lands after the budget is actually available, not exactly at
// the boundary.
const throttleBuffer = 250 * time.Millisecond

// baseBackoff seeds the exponential backoff used when the platform
// reports no budget detail.
const baseBackoff = 500 * time.Millisecond

// Limiter wraps a Client with leaky-bucket pacing, throttle-aware
// backoff and bounded retries. It blocks the calling goroutine, not the
// process, until budget is estimated available, and enforces a minimum
// inter-call spacing as a floor even when budget is plentiful.
//
// A Limiter is safe for concurrent use. The budget is one shared
// estimate, so concurrent callers are serialized through it: whoever
// holds the lock waits out the spacing and budget restore before the
// next caller gets a turn.
type Limiter struct {
	inner  Client
	cfg    Config
	logger *zap.Logger

	// mu guards the budget estimate below.
	mu        sync.Mutex
	available float64
	lastCall  time.Time

	// Injected for tests; default to the real clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter wraps the client with rate limiting per the config.
func NewLimiter(inner Client, cfg Config, logger *zap.Logger) *Limiter {
	if cfg.BucketCapacity <= 0 {
		cfg.BucketCapacity = 1000
	}
	if cfg.RestoreRate <= 0 {
		cfg.RestoreRate = 50
	}
	return &Limiter{
		inner:     inner,
		cfg:       cfg,
		logger:    logger,
		available: cfg.BucketCapacity,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *Limiter) LookupByNaturalKey(ctx context.Context, kind source.Kind, key string) (string, error) {
	var id string
	err := l.execute(ctx, "lookup", l.cfg.QueryCost, func() error {
		var err error
		id, err = l.inner.LookupByNaturalKey(ctx, kind, key)
		return err
	})
	return id, err
}

func (l *Limiter) EnumerateIDs(ctx context.Context, kind source.Kind, cursor string) (*IDPage, error) {
	var page *IDPage
	err := l.execute(ctx, "enumerate", l.cfg.QueryCost, func() error {
		var err error
		page, err = l.inner.EnumerateIDs(ctx, kind, cursor)
		return err
	})
	return page, err
}

func (l *Limiter) Create(ctx context.Context, kind source.Kind, payload Payload) (*MutationResult, error) {
	var res *MutationResult
	err := l.execute(ctx, "create", l.cfg.MutationCost, func() error {
		var err error
		res, err = l.inner.Create(ctx, kind, payload)
		return err
	})
	return res, err
}

func (l *Limiter) Update(ctx context.Context, kind source.Kind, targetID string, payload Payload) (*MutationResult, error) {
	var res *MutationResult
	err := l.execute(ctx, "update", l.cfg.MutationCost, func() error {
		var err error
		res, err = l.inner.Update(ctx, kind, targetID, payload)
		return err
	})
	return res, err
}

func (l *Limiter) Delete(ctx context.Context, kind source.Kind, targetID string) (bool, error) {
	var deleted bool
	err := l.execute(ctx, "delete", l.cfg.MutationCost, func() error {
		var err error
		deleted, err = l.inner.Delete(ctx, kind, targetID)
		return err
	})
	return deleted, err
}

// execute paces the call, then retries throttled and transient failures
// up to the configured bound. Permanent rejections (4xx) and any other
// error (including validation results, which are not errors here)
// propagate immediately.
func (l *Limiter) execute(ctx context.Context, op string, cost float64, call func() error) error {
	var lastErr error

	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if err := l.pace(ctx, cost); err != nil {
			return err
		}

		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		var wait time.Duration
		var throttled *ThrottledError
		var transport *TransportError
		switch {
		case errors.As(err, &throttled):
			wait = ThrottleWait(cost, throttled.Available, throttled.RestoreRate)
			// Adopt the server's view of the bucket.
			l.mu.Lock()
			l.available = throttled.Available
			l.lastCall = l.now()
			l.mu.Unlock()
		case errors.Is(err, ErrThrottled):
			wait = l.backoff(attempt)
		case errors.As(err, &transport):
			if !transport.Transient() {
				return err
			}
			wait = l.backoff(attempt)
		default:
			return err
		}

		l.logger.Warn("target call throttled, backing off",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}

	return &ThrottleExhaustedError{Op: op, Attempts: l.cfg.MaxRetries + 1, Err: lastErr}
}

// pace blocks until the estimated budget covers the call cost and the
// minimum spacing since the previous call has elapsed, then spends the
// cost from the local estimate.
func (l *Limiter) pace(ctx context.Context, cost float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if !l.lastCall.IsZero() {
		elapsed := now.Sub(l.lastCall)
		l.available = math.Min(l.cfg.BucketCapacity, l.available+elapsed.Seconds()*l.cfg.RestoreRate)

		var wait time.Duration
		if spacing := time.Duration(l.cfg.MinCallSpacingMs)*time.Millisecond - elapsed; spacing > wait {
			wait = spacing
		}
		if l.available < cost {
			if budgetWait := restoreWait(cost-l.available, l.cfg.RestoreRate); budgetWait > wait {
				wait = budgetWait
			}
		}
		if wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
			now = l.now()
			l.available = math.Min(l.cfg.BucketCapacity, l.available+wait.Seconds()*l.cfg.RestoreRate)
		}
	}

	l.available = math.Max(0, l.available-cost)
	l.lastCall = now
	return nil
}

// ThrottleWait computes how long to wait after a throttled response
// before retrying: the time for the reported budget to restore the
// missing points, plus a fixed buffer.
func ThrottleWait(cost, available, restoreRate float64) time.Duration {
	if restoreRate <= 0 {
		return baseBackoff + throttleBuffer
	}
	needed := cost - available
	if needed <= 0 {
		return throttleBuffer
	}
	return restoreWait(needed, restoreRate) + throttleBuffer
}

// restoreWait is the time for restoreRate to replenish needed points.
func restoreWait(needed, restoreRate float64) time.Duration {
	ms := math.Ceil(needed / restoreRate * 1000)
	return time.Duration(ms) * time.Millisecond
}

// backoff returns an exponential delay with jitter, capped at the
// configured maximum, for throttle responses without budget detail and
// for transient transport failures.
func (l *Limiter) backoff(attempt int) time.Duration {
	max := time.Duration(l.cfg.MaxBackoffMs) * time.Millisecond
	if max <= 0 {
		max = 30 * time.Second
	}
	d := baseBackoff * time.Duration(1<<uint(attempt))
	if d > max || d <= 0 {
		d = max
	}
	// Up to 25% jitter so synchronized retries fan out.
	jitter := time.Duration(rand.Int63n(int64(d)/4 + 1))
	return d + jitter
}
