package constants

import "time"

// Application constants
const (
	ApplicationName  = "dxview"
	ApplicationTitle = "Desktop Index"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 760
	DefaultWindowHeight = 560

	// Item spacing
	DefaultItemSpacing = 4
)

// Server constants
const (
	DefaultServerURL      = "http://localhost:8000"
	DefaultTimeoutSeconds = 30
	DefaultRecentDays     = 7
	MinRecentDays         = 1
	MaxRecentDays         = 30

	// Environment fallback when the keyring is unavailable or disabled
	APITokenEnvVar = "DXVIEW_API_TOKEN"
)

// Recent list display constants
const (
	// Filenames longer than MaxDisplayNameLength render truncated to
	// TruncatedNameLength runes plus EllipsisMarker.
	MaxDisplayNameLength = 30
	TruncatedNameLength  = 27
	EllipsisMarker       = "..."
)

// Relative date thresholds
const (
	RelativeDateMinute = time.Minute
	RelativeDateHour   = time.Hour
	RelativeDateDay    = 24 * time.Hour
	RelativeDateWeek   = 7 * 24 * time.Hour
)

// Refresh watcher constants
const (
	DefaultRefreshInterval = 60 * time.Second
	MinRefreshInterval     = 5 * time.Second
)

// File size constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Configuration constants
const (
	ConfigFileName = "config.json"
)
