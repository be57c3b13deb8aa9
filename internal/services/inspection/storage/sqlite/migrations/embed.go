package migrations

import "embed"

// FS holds the save-slot schema migrations.
//
//go:embed *.sql
var FS embed.FS
