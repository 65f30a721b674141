// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a SQLite file, based on the
// configured driver. The database is optional: it only backs the merge audit history.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema so callers can verify
// that the audit tables carry the columns they expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "merge_runs", []string{"id", "kind"})
package database
