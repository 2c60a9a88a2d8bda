package service

import (
	"path/filepath"

	"portfolio/app/config"
)

// Database path - variable to allow testing with different paths
var dbPath = "data/badger"

// Backup directory used by the backup command
var backupDir = "data/backups"

// Configure points the maintenance commands at the configured store.
// Backups are kept in a "backups" directory next to the database.
func Configure(cfg config.Config) {
	dbPath = cfg.DBPath
	backupDir = filepath.Join(filepath.Dir(cfg.DBPath), "backups")
}
