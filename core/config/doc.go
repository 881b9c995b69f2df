// Package config provides configuration management for the catalog sync service.
//
// It utilizes Viper for loading configuration from environment variables
// and a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: mapping store connection details
//   - Storage: S3/MinIO credentials and bucket settings for source files
//   - Source: source-of-truth export API endpoint and paging
//   - Target: target platform admin API endpoint and rate limit budget
//   - Sync: engine tuning (page size, reference failure policy)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
