package config

import "os"

// SchemaVersion is the running database schema version. Backups record it
// and restore refuses snapshots taken under a different version.
const SchemaVersion = 6

// DefaultPageSize is the list page size used when the caller gives none.
const DefaultPageSize = 20

// BackupSecret returns the key material for sealing backup blobs. The
// fallback is a constant baked into the application, so sealed backups are
// obfuscated rather than confidential; see backup/codec.go.
func BackupSecret() string {
	if secret := os.Getenv("BACKUP_SECRET"); secret != "" {
		return secret
	}
	return "alfajr-secure-key"
}

// DBPath returns the sqlite file location.
func DBPath() string {
	if path := os.Getenv("DB_PATH"); path != "" {
		return path
	}
	return "alfajr.db"
}
