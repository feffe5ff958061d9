// Package constants provides shared constants used throughout the fabsync codebase.
// This includes file names, extensions, permissions, and format values that
// should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Well-known file and directory names inside a profile tree
const (
	// DataDirName is the catalog data directory inside a profile root
	DataDirName = "data"

	// ProfilesDirName is the directory holding named profiles under the root
	ProfilesDirName = "profiles"

	// BackupDirName is the shared backup directory under the root
	BackupDirName = "backups"

	// GlobalProfileName is the name of the distinguished default profile
	GlobalProfileName = "Global"
)

// Document file names
const (
	// ManifestFileName is the per-profile catalog manifest, stored inside
	// the profile's data directory
	ManifestFileName = "manifest.json"

	// JournalFileName is the pending-cleanup journal file name
	JournalFileName = "pending-cleanup.json"

	// PackageManifestFileName is the content package manifest file name
	PackageManifestFileName = "package.json"
)

// File extensions
const (
	// CatalogFileExt is the extension of catalog data files
	CatalogFileExt = ".yaml"

	// ItemFileExt is the extension of content item files
	ItemFileExt = ".itm"

	// ThumbnailFileExt is the extension of companion thumbnail files
	ThumbnailFileExt = ".png"

	// BackupFileExt is the extension appended to timestamped backups
	BackupFileExt = ".bak"
)

// Format constants
const (
	// TimeFormatFilename is the timestamp format used in backup filenames
	TimeFormatFilename = "20060102-150405"

	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"
)

// Logging constants
const (
	// LogRotationSize is the maximum size of a log file before rotation (MB)
	LogRotationSize = 10

	// LogRotationAge is the maximum age of log files in days before deletion
	LogRotationAge = 7

	// LogRotationBackups is the maximum number of old log files to retain
	LogRotationBackups = 5
)

// Timeout constants define various timeout durations used in the application
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)
