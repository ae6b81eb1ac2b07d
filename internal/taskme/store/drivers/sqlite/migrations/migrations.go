// Package migrations embeds the ordered schema migrations applied by
// golang-migrate. Files follow NNNNNN_name.{up,down}.sql.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
