package constants

const (
	AppName            = "habitlog"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultRecentLogLimit mirrors the "recent logs" view of the menu application
	DefaultRecentLogLimit = 50

	// Environment variables
	EnvDatabase         = "HABITLOG_DB"
	EnvDBConnection     = "HABITLOG_DB_CONNECTION"
	EnvSettingsFile     = "HABITLOG_SETTINGS"
	DatabaseFileName    = "habitlog.db"
	SettingsFileName    = "config.yaml"
	MemoryStorePrefix   = "memory:"
	JSONStoreFileSuffix = ".json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlog-"
	BackupFileSuffix = ".db"

	// Field limits
	MaxNameLength  = 255
	MaxNotesLength = 4096
	PhoneDigits    = 10
)
