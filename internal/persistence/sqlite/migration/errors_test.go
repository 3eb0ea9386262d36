package migration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("near \"CREAT\": syntax error")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "migration with file",
			err:  NewMigrationError("001", "migrations/001_create_timetable.sql", "execute migration", cause),
			want: `migration 001 (migrations/001_create_timetable.sql): execute migration: near "CREAT": syntax error`,
		},
		{
			name: "migration without version",
			err:  NewMigrationError("", "migrations", "read directory", cause),
			want: `migration (migrations): read directory: near "CREAT": syntax error`,
		},
		{
			name: "database with version",
			err:  NewDatabaseError("002", "commit transaction", cause),
			want: `database 002: commit transaction: near "CREAT": syntax error`,
		},
		{
			name: "database bookkeeping",
			err:  NewDatabaseError("", "get applied versions", cause),
			want: `database: get applied versions: near "CREAT": syntax error`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestMigrationDescription(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "header", content: "-- Migration: 001\n-- Description: Create timetable\nCREATE TABLE t (a TEXT);", want: "Create timetable"},
		{name: "leading blank lines", content: "\n\n-- Description:  Adds column \nALTER TABLE t ADD COLUMN b TEXT;", want: "Adds column"},
		{name: "header after statements is ignored", content: "CREATE TABLE t (a TEXT);\n-- Description: late", want: ""},
		{name: "no header", content: "CREATE TABLE t (a TEXT);", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migrationDescription(tt.content))
		})
	}
}
