// Package migrations holds the database schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
