// Package migrations ships the schema as numbered .up.sql/.down.sql pairs.
package migrations

import "embed"

// FS holds every migration file.
//
//go:embed *.sql
var FS embed.FS
