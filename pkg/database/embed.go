package database

import "embed"

// EmbedMigrations contains the embedded SQL migration files for every store driver.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var EmbedMigrations embed.FS
