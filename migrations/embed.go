// Package migrations holds the SQL schema migrations applied with goose.
package migrations

import "embed"

// FS contains the migration files.
//
//go:embed *.sql
var FS embed.FS
