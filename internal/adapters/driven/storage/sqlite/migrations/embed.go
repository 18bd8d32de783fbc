// Package migrations holds the schema of the settings database.
package migrations

import "embed"

// FS holds the numbered up/down migration scripts.
//
//go:embed *.sql
var FS embed.FS
