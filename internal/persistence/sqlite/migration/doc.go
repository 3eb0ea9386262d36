// Package migration applies versioned schema changes to a SQLite database.
//
// Migration files follow the naming convention {version}_{description}.sql
// (for example "001_create_timetable.sql") and are read from an fs.FS, which
// lets the schema ship embedded in the binary. Applied versions are tracked
// in a schema_migrations table so each file runs exactly once, inside its own
// transaction.
//
// Example usage:
//
//	manager := migration.NewManager(migration.NewFileScanner(), migration.NewSQLiteExecutor(db, logger), files, "migrations", logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return err
//	}
package migration
