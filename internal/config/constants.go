package config

const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./librarian.db"

	// DefaultMaxInputRetries is how often a malformed console entry is
	// re-prompted before the dialog gives up (0 = unlimited)
	DefaultMaxInputRetries = 0
)
