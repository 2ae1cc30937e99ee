// Package migrations holds the versioned schema, applied in version order by
// the migration runner.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
