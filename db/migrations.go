// Package db holds the postgres schema migrations.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
