package source

// Config holds configuration for the source system API.
type Config struct {
	// BaseURL is the root URL of the source export API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:3000"`
	// Token is the bearer token for the export API.
	Token string `mapstructure:"token" default:""`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"250"`
	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
