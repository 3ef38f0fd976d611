package db

import "embed"

// MigrationFS holds the schema migrations, applied by cmd/migrate and the
// integration suite.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
