package syncer

// Reference policy values for Config.OnPartialReferenceFailure.
const (
	// PolicyDropUnresolved syncs list-valued reference fields with the
	// resolved subset, omitting unresolved entries.
	PolicyDropUnresolved = "drop"
	// PolicyFailEntity skips the whole entity when any list entry
	// cannot be resolved.
	PolicyFailEntity = "fail"
)

// Config holds configuration for the sync engine.
type Config struct {
	// PageSize is how many source entities are fetched per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// ErrorSampleSize bounds the error sample kept per kind summary.
	ErrorSampleSize int `mapstructure:"error_sample_size" default:"10"`
	// OnPartialReferenceFailure picks the policy for unresolved entries
	// in list-valued reference fields: "drop" or "fail".
	OnPartialReferenceFailure string `mapstructure:"on_partial_reference_failure" default:"drop"`
}

func (c Config) pageSize() int {
	if c.PageSize <= 0 {
		return 100
	}
	return c.PageSize
}

func (c Config) errorSampleSize() int {
	if c.ErrorSampleSize <= 0 {
		return 10
	}
	return c.ErrorSampleSize
}
