package constants

// Package messages contains all text message constants printed by the crondir CLI.

// Build messages
const (
	// MsgBuildDone is printed after the new crontab was installed.
	MsgBuildDone = "Crontab updated from %s\n"

	// MsgBackupWritten is printed when a backup file was created.
	MsgBackupWritten = "Backup written to %s\n"

	// MsgBackupSkipped is printed when the current crontab is empty.
	MsgBackupSkipped = "Crontab is empty, no backup written\n"
)

// Snippet messages
const (
	// MsgSnippetAdded is the success message when a snippet is added.
	MsgSnippetAdded = "Added %s. Rebuild with crondir build.\n"

	// MsgSnippetRemoved is the success message when a snippet is removed.
	MsgSnippetRemoved = "Removed %s. Rebuild with crondir build.\n"

	// MsgSnippetNotFound is printed by a forced remove of a missing snippet.
	MsgSnippetNotFound = "%s not found.\n"

	// MsgNoSnippets is printed by list when the store is empty.
	MsgNoSnippets = "No snippets installed\n"
)

// Watch messages
const (
	// MsgWatchStarted is printed once the store directory is being watched.
	MsgWatchStarted = "Watching %s for changes (Ctrl+C to stop)\n"

	// MsgWatchRebuilt is printed after every automatic rebuild.
	MsgWatchRebuilt = "Rebuilt crontab: %d snippet(s)\n"
)

// Config messages
const (
	// MsgConfigValidationError is the message when configuration validation fails.
	MsgConfigValidationError = "Configuration validation failed:\n"

	// MsgConfigValidatePrefix is the prefix for configuration validation errors.
	MsgConfigValidatePrefix = "  - %v\n"

	// MsgConfigValid is the message when configuration is successfully loaded and validated.
	MsgConfigValid = "Configuration is valid\n"
)

// Error messages
const (
	// MsgErrorStdinNeedsName is returned when add reads stdin without a snippet name.
	MsgErrorStdinNeedsName = "a snippet name is required when reading from stdin"

	// MsgErrorUnknownOutput is returned for unsupported list output formats.
	MsgErrorUnknownOutput = "unknown output format %q (expected: text, json, yaml)"
)
