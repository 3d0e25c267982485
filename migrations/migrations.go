// Package migrations embeds the SQL schema migrations for every
// supported backend. Filenames follow NNN_name.sql and are applied in
// ascending order by the migration runner.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
