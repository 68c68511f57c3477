// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections from the application's configuration.
//
// # Connect
//
// Connect selects the driver from Config.Driver. MySQL connections get DSN
// timeouts, pool limits and an initial ping; SQLite uses Config.Name as its DSN.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let features verify that the tables backing
// their relations have the columns they read and write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "homepage_contents", "homepage_id", "position")
package database
