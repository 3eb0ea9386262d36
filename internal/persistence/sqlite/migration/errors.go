package migration

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes wrapped by MigrationError and DatabaseError.
var (
	ErrMigrationFailed      = errors.New("migration execution failed")
	ErrInvalidMigrationFile = errors.New("invalid migration file format")
	ErrVersionConflict      = errors.New("migration version conflict")
	ErrInvalidVersion       = errors.New("invalid migration version")
	ErrDuplicateVersion     = errors.New("duplicate migration version")
)

// MigrationError reports a failure tied to a migration file.
type MigrationError struct {
	Version   string
	FilePath  string
	Operation string
	Err       error
}

func (e *MigrationError) Error() string {
	return describe("migration", e.Version, e.FilePath, e.Operation, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

func NewMigrationError(version, filePath, operation string, err error) *MigrationError {
	return &MigrationError{Version: version, FilePath: filePath, Operation: operation, Err: err}
}

// DatabaseError reports a failed statement against the schema_migrations
// bookkeeping or inside a migration transaction.
type DatabaseError struct {
	Version   string
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	return describe("database", e.Version, "", e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewDatabaseError(version, operation string, err error) *DatabaseError {
	return &DatabaseError{Version: version, Operation: operation, Err: err}
}

func describe(kind, version, path, operation string, err error) string {
	var b strings.Builder
	b.WriteString(kind)
	if version != "" {
		b.WriteString(" " + version)
	}
	if path != "" {
		b.WriteString(" (" + path + ")")
	}
	fmt.Fprintf(&b, ": %s: %v", operation, err)
	return b.String()
}
