// Package migrations embeds the goose SQL migrations for the SQL-backed stores.
package migrations

import "embed"

// FS holds one directory of migrations per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Directory names inside FS
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
