package config

import (
	"time"

	"github.com/preston-bernstein/permit-availability/internal/output"
)

const (
	envBaseURL     = "PERMITS_BASE_URL"
	envTimezone    = "PERMITS_TIMEZONE"
	envWindowDays  = "PERMITS_WINDOW_DAYS"
	envHTTPTimeout = "PERMITS_HTTP_TIMEOUT"
	envConcurrency = "PERMITS_CONCURRENCY"
	envRateLimit   = "PERMITS_RATE_LIMIT"
	envSource      = "PERMITS_SOURCE"
	envFormat      = "PERMITS_FORMAT"
	envLogLevel    = "LOG_LEVEL"
	envLogFormat   = "LOG_FORMAT"
	envMetricsOn   = "METRICS_ENABLED"
	envTextfile    = "METRICS_TEXTFILE"
	envOtelEnd     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService = "OTEL_SERVICE_NAME"
	envOtelInsec   = "OTEL_EXPORTER_OTLP_INSECURE"

	// DefaultPath is read when no --config flag is given. A missing file is not an error.
	DefaultPath = "permits.toml"

	SourceWildtrails = "wildtrails"
	SourceFixture    = "fixture"

	defaultBaseURL     = "https://yosemite.org/wp-content/plugins/wildtrails/query.php"
	defaultTimezone    = "America/Los_Angeles"
	defaultWindowDays  = 15
	defaultHTTPTimeout = 30 * Duration(time.Second)
	defaultSource      = SourceWildtrails
	defaultFormat      = output.FormatCSV
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultServiceName = "permit-availability"
)
