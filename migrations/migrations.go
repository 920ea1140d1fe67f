// Package migrations embeds the SQL schema applied at start-up.
package migrations

import "embed"

// FS holds the *.up.sql files in lexical order of application.
//
//go:embed *.sql
var FS embed.FS
