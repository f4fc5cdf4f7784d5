package migrations

import "embed"

// FS contains embedded SQLite migrations for baseline storage.
//
//go:embed *.sql
var FS embed.FS
