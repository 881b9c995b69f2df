package syncer

// Outcome classifies what the engine did with a single entity.
type Outcome string

const (
	// OutcomeCreated means a new target record was materialized.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing target record was overwritten.
	OutcomeUpdated Outcome = "updated"
	// OutcomeSkippedUnchanged means the fingerprint matched the last
	// synced state, so no call was issued.
	OutcomeSkippedUnchanged Outcome = "skipped-unchanged"
	// OutcomeSkippedMissingReference means a required foreign reference
	// had no mapping yet; the entity is retried on a later pass.
	OutcomeSkippedMissingReference Outcome = "skipped-missing-reference"
	// OutcomeFailed means the entity's mutation or mapping write failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeDeleted means a delete-mode pass retracted the record.
	OutcomeDeleted Outcome = "deleted"
)

// EntityResult is the per-entity reconciliation outcome.
type EntityResult struct {
	// ExternalID is the source system's id for the entity.
	ExternalID string `json:"external_id"`

	// NaturalKey is the entity's handle/path/SKU.
	NaturalKey string `json:"natural_key"`

	// TargetID is the target platform id, when known.
	TargetID string `json:"target_id,omitempty"`

	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// Reason explains skips and failures.
	Reason string `json:"reason,omitempty"`
}

// KindSummary aggregates one kind's pass.
type KindSummary struct {
	Kind string `json:"kind"`

	Created                 int `json:"created"`
	Updated                 int `json:"updated"`
	SkippedUnchanged        int `json:"skipped_unchanged"`
	SkippedMissingReference int `json:"skipped_missing_reference"`
	Failed                  int `json:"failed"`
	Deleted                 int `json:"deleted"`

	// StaleMappingsRemoved counts mapping records dropped by the
	// pre-sync sweep because their target id no longer exists.
	StaleMappingsRemoved int `json:"stale_mappings_removed"`

	// Errors is a bounded sample of per-entity error messages.
	Errors []string `json:"errors"`

	// FetchError is set when enumerating the source or target failed
	// and the kind's pass was aborted. Other kinds still run.
	FetchError string `json:"fetch_error,omitempty"`

	// Aborted is set when the pass was cut short by cancellation;
	// the counters cover only entities processed before the stop.
	Aborted bool `json:"aborted,omitempty"`

	// Duration is the wall time spent on this kind.
	Duration string `json:"duration"`
}

// record folds an entity result into the summary counters.
func (s *KindSummary) record(res EntityResult, sampleCap int) {
	switch res.Outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkippedUnchanged:
		s.SkippedUnchanged++
	case OutcomeSkippedMissingReference:
		s.SkippedMissingReference++
	case OutcomeDeleted:
		s.Deleted++
	case OutcomeFailed:
		s.Failed++
		if len(s.Errors) < sampleCap {
			s.Errors = append(s.Errors, res.ExternalID+": "+res.Reason)
		}
	}
}

// RunSummary is the final report of a sync run across one or more kinds.
type RunSummary struct {
	// RunID uniquely identifies this run in logs.
	RunID string `json:"run_id"`

	// Kinds holds per-kind summaries in processing order.
	Kinds []KindSummary `json:"kinds"`

	// ExecutionTime is the total wall time of the run.
	ExecutionTime string `json:"execution_time"`
}

// Options control a single sync invocation.
type Options struct {
	// Limit caps how many source entities are processed per kind.
	// Zero means no cap.
	Limit int

	// DeleteMode walks existing mappings and retracts the target
	// records instead of creating or updating them.
	DeleteMode bool
}
