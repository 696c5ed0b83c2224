package sqlite

import (
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func countMigrations(t *testing.T, db *sql.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))

	return count
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)

	return name == tableName
}

func TestApplyMigrations_RecordsApplied(t *testing.T) {
	db := openInMemoryDB(t)

	fsys := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);"),
		},
	}

	require.NoError(t, applyMigrations(db, fsys))

	assert.Equal(t, int64(1), countMigrations(t, db))
	assert.True(t, tableExists(t, db, "items"))
}

func TestApplyMigrations_SkipsAlreadyApplied(t *testing.T) {
	db := openInMemoryDB(t)

	fsys := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);"),
		},
	}

	require.NoError(t, applyMigrations(db, fsys))
	require.NoError(t, applyMigrations(db, fsys))

	assert.Equal(t, int64(1), countMigrations(t, db))
}

func TestApplyMigrations_DoesNotRecordFailedMigration(t *testing.T) {
	db := openInMemoryDB(t)

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREAT table things(id INT);"),
		},
	}
	require.Error(t, applyMigrations(db, bad))
	assert.Equal(t, int64(0), countMigrations(t, db))

	good := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE things(id INTEGER PRIMARY KEY);"),
		},
	}
	require.NoError(t, applyMigrations(db, good))
	assert.Equal(t, int64(1), countMigrations(t, db))
}

func TestApplyMigrations_IgnoresDownSection(t *testing.T) {
	db := openInMemoryDB(t)

	fsys := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
	}

	require.NoError(t, applyMigrations(db, fsys))

	assert.True(t, tableExists(t, db, "items"))
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "no markers returns everything",
			content:  "CREATE TABLE a(id TEXT);",
			expected: "CREATE TABLE a(id TEXT);",
		},
		{
			name:     "up only",
			content:  "-- +migrate Up\nCREATE TABLE a(id TEXT);",
			expected: "\nCREATE TABLE a(id TEXT);",
		},
		{
			name:     "up and down",
			content:  "-- +migrate Up\nCREATE TABLE a(id TEXT);\n-- +migrate Down\nDROP TABLE a;",
			expected: "\nCREATE TABLE a(id TEXT);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractUpMigration(tt.content))
		})
	}
}
