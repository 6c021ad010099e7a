// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the
// database with the configured timeout before returning.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for either dialect. MissingColumns compares
// them against the columns a feature's model requires, which the schema command uses
// to verify the server configuration table before a setup run touches it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "server_configs", []string{"server_id"})
package database
