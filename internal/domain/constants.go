package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Storage constants
const (
	// HistoryStorageKey is the single key holding the serialized history collection.
	HistoryStorageKey = "marketingCopyHistory"

	StorageBackendSQLite = "sqlite"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
)

// Provider defaults
const (
	DefaultPrimaryModel       = "deepseek-reasoner"
	DefaultPrimaryBaseURL     = "https://api.deepseek.com"
	DefaultSecondaryModel     = "gemini-2.5-flash"
	DefaultPrimaryTemperature = 0.7
)

// Timing constants
const (
	// DefaultRevealInterval is the cadence of the typing effect.
	DefaultRevealInterval = 20 * time.Millisecond
)

// Time formats
const (
	// TimestampFormat renders HistoryEntry.Timestamp.
	TimestampFormat = "2006/1/2 15:04:05"
)

// Display constants
const (
	// RevealPlaceholder is emitted before the first character.
	RevealPlaceholder = " "
	// InputPreviewRunes and OutputPreviewRunes truncate history listings.
	InputPreviewRunes  = 40
	OutputPreviewRunes = 50
)
