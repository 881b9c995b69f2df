// Package fingerprint computes stable content hashes for change
// detection. Two entities that are semantically identical for sync
// purposes produce the same digest regardless of field or list-member
// ordering; any value change produces a different one.
package fingerprint
