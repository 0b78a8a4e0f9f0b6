package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// DownloadFilePerm is the permission for downloaded media files.
	DownloadFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP request.
	DefaultHTTPTimeout = 15 * time.Second
)

// Retry behavior.
const (
	// DefaultRetryMax is the default maximum number of retries per request.
	DefaultRetryMax = 3

	// BackoffBase is the starting delay for exponential backoff.
	BackoffBase = 100 * time.Millisecond

	// BackoffCeiling bounds every single backoff sleep.
	BackoffCeiling = 5 * time.Second
)

// Upstream API endpoints.
const (
	// DefaultHost is the Pexels API host.
	DefaultHost = "https://api.pexels.com"

	// PhotoAPIPrefix is the path prefix for photo and collection endpoints.
	PhotoAPIPrefix = "/v1"

	// VideoAPIPrefix is the path prefix for video endpoints.
	VideoAPIPrefix = "/videos"
)

// Pagination defaults.
const (
	// StandardPageSize is the upstream default number of items per page.
	StandardPageSize = 15

	// MaxPageSize is the largest per_page value the upstream accepts.
	MaxPageSize = 80
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatRaw for raw pass-through output.
	FormatRaw = "raw"
)

// UI and display constants.
const (
	// MaskedSecret replaces credential material in diagnostics.
	MaskedSecret = "***"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// JSONIndentSize is the number of spaces for JSON and YAML indentation.
	JSONIndentSize = 2

	// ValueDisplayLength truncates long values in table cells.
	ValueDisplayLength = 80
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments
	// for two-argument commands.
	MinimumArgumentCount = 2
)
