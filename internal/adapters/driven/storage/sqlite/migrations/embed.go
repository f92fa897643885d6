// Package migrations holds the capture database schema as numbered
// NNN_name.up.sql / .down.sql scripts.
package migrations

import "embed"

// FS is the embedded migration scripts.
//
//go:embed *.sql
var FS embed.FS
