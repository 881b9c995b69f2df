// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection using the configured driver.
// MySQL is the production driver; sqlite is supported for local runs and tests
// where spinning up a server is overkill.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
