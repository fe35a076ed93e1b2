// Package migrations embeds the goose SQL migrations for the local
// database. Migrations are additive only: a schema change must never drop
// or rewrite existing user data.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
