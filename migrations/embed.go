// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds every *.sql migration file in golang-migrate naming.
//
//go:embed *.sql
var FS embed.FS
