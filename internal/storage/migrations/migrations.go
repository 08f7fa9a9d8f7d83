// Package migrations embeds the SQL migrations for the local key-value
// database. They are applied with goose on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
