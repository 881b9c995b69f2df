package target

// Config holds configuration for the target platform client and its
// rate limiter.
type Config struct {
	// BaseURL is the root URL of the target platform admin API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:4000"`
	// Token is the access token for the admin API.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// BucketCapacity is the platform's leaky-bucket capacity in points.
	BucketCapacity float64 `mapstructure:"bucket_capacity" default:"1000"`
	// RestoreRate is the budget restoration rate in points/second.
	RestoreRate float64 `mapstructure:"restore_rate" default:"50"`
	// QueryCost is the estimated point cost of a read call.
	QueryCost float64 `mapstructure:"query_cost" default:"1"`
	// MutationCost is the estimated point cost of a mutation call.
	MutationCost float64 `mapstructure:"mutation_cost" default:"10"`

	// MinCallSpacingMs is the floor between consecutive calls even when
	// budget is plentiful.
	MinCallSpacingMs int `mapstructure:"min_call_spacing_ms" default:"100"`
	// MaxRetries bounds retries of throttled or transient failures.
	MaxRetries int `mapstructure:"max_retries" default:"5"`
	// MaxBackoffMs caps the exponential backoff delay.
	MaxBackoffMs int `mapstructure:"max_backoff_ms" default:"30000"`
}
