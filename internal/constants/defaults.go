package constants

import "time"

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// DefaultGoVersion is the default Go version when not provided at build time
const DefaultGoVersion = "unknown"

// Logging defaults for the CLI. Diagnostics go to stderr so that command
// output on stdout stays machine readable.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stderr"
)

// DefaultWatchDebounce groups bursts of filesystem events into one rebuild.
const DefaultWatchDebounce = 500 * time.Millisecond

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "crondir"
