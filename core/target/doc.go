// Package target is the boundary to the target platform: the Client
// interface the sync engine mutates through, an HTTP implementation of
// it, and the Limiter that paces every outbound call.
//
// # Rate Limiting
//
// The platform meters calls with a leaky bucket: a budget of C points
// restored at R points/second, each call costing an advertised number
// of points. The Limiter keeps a local estimate of the bucket, blocks
// the caller until the estimated budget covers a call, and enforces a
// minimum inter-call spacing even when budget is plentiful, which
// protects against burst throttling the server did not pre-announce.
//
// On a throttled response the limiter prefers the server's reported
// available/restore-rate to compute an exact wait; without detail it
// falls back to capped exponential backoff with jitter. After the retry
// bound it fails with ThrottleExhaustedError rather than swallowing the
// throttle.
//
// # Error Taxonomy
//
// Validation rejections travel as UserErrors inside MutationResult and
// are never retried. TransportError and throttles are transient and
// retried; everything else propagates unchanged.
package target
