package migration

import (
	"database/sql"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed *.sql
var files embed.FS

func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}

// Run applies every pending migration in the given direction and returns how
// many were applied.
func Run(db *sql.DB, direction migrate.MigrationDirection) (int, error) {
	return migrate.Exec(db, "postgres", Source(), direction)
}
