package target

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/source"
)

// Payload is the kind-agnostic mutation input built by a kind adapter.
// Reference fields have already been rewritten to target ids.
type Payload struct {
	NaturalKey string         `json:"natural_key"`
	Fields     map[string]any `json:"fields"`
}

// UserError is a structured validation error reported by the target
// platform against a single mutation. A non-empty list means the
// payload was rejected; this is never retried.
type UserError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MutationResult is the outcome of a create or update mutation.
// An empty UserErrors slice means success and TargetID is set.
type MutationResult struct {
	TargetID   string      `json:"id"`
	UserErrors []UserError `json:"user_errors"`
}

// IDPage is one page of a target-side enumeration.
type IDPage struct {
	IDs        []string `json:"ids"`
	NextCursor string   `json:"next_cursor"`
}

// Client is the boundary to the target platform. Implementations map
// these operations onto the platform's wire format; the sync engine
// never sees that format.
type Client interface {
	// LookupByNaturalKey returns the target id of an existing record
	// with the given natural key, or "" if none exists.
	LookupByNaturalKey(ctx context.Context, kind source.Kind, key string) (string, error)

	// EnumerateIDs pages through all target ids of a kind, used for
	// stale-mapping sweeps. An empty cursor starts from the beginning.
	EnumerateIDs(ctx context.Context, kind source.Kind, cursor string) (*IDPage, error)

	// Create materializes a new record and returns its target id, or
	// the platform's validation errors.
	Create(ctx context.Context, kind source.Kind, payload Payload) (*MutationResult, error)

	// Update overwrites the record with the given target id.
	Update(ctx context.Context, kind source.Kind, targetID string, payload Payload) (*MutationResult, error)

	// Delete removes the record. It reports false if the record was
	// already absent.
	Delete(ctx context.Context, kind source.Kind, targetID string) (bool, error)
}

// ErrThrottled is returned when the platform rejects a call for rate
// budget reasons without reporting any budget detail.
var ErrThrottled = errors.New("target: throttled")

// ThrottledError is a throttling rejection carrying the platform's
// reported budget state, which lets the limiter compute an exact wait.
type ThrottledError struct {
	// RequestedCost is the point cost of the rejected call.
	RequestedCost float64
	// Available is the budget the platform reports as available now.
	Available float64
	// RestoreRate is the reported budget restoration in points/second.
	RestoreRate float64
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("target: throttled (requested=%.0f available=%.0f restore=%.0f/s)",
		e.RequestedCost, e.Available, e.RestoreRate)
}

// TransportError is a request that failed outside the throttle and
// validation paths: network-level faults, 5xx, or a hard 4xx rejection.
// The limiter retries only the Transient ones.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("target: %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("target: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth retrying: network
// errors carry no status, and 5xx is a server-side fault. Everything
// else (4xx) is a permanent rejection of this request.
func (e *TransportError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// ThrottleExhaustedError is returned after the retry bound is spent on
// throttled or transient failures. It is distinguishable from the
// underlying cause via Unwrap.
type ThrottleExhaustedError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *ThrottleExhaustedError) Error() string {
	return fmt.Sprintf("target: %s gave up after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *ThrottleExhaustedError) Unwrap() error { return e.Err }
