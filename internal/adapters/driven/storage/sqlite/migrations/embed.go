// Package migrations holds the schema of the gshell account database.
// Files are named NNN_name.up.sql and applied in order by the sqlite store.
package migrations

import "embed"

// FS holds the account and token table migrations.
//
//go:embed *.sql
var FS embed.FS
