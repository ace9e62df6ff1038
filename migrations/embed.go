// Package migrations ships the forward-only SQLite schema. Files are named
// NNNN_description.sql and applied in version order.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
