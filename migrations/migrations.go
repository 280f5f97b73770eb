// Package migrations embeds the schema migrations. The same DDL runs on
// Postgres and SQLite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
