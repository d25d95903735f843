// Package migrations embeds the postgres schema migrations so the service
// can apply them at startup.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS
