package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	// Textfile, when set, receives a Prometheus text dump after each run.
	Textfile     string `toml:"textfile"`
	OtlpEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
	OtlpInsecure bool   `toml:"otlp_insecure"`
}

func defaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      true,
		ServiceName:  defaultServiceName,
		OtlpInsecure: true,
	}
}

func (m *MetricsConfig) applyEnv() {
	m.Enabled = boolEnvOrDefault(envMetricsOn, m.Enabled)
	m.Textfile = envOrDefault(envTextfile, m.Textfile)
	m.OtlpEndpoint = envOrDefault(envOtelEnd, m.OtlpEndpoint)
	m.ServiceName = envOrDefault(envOtelService, m.ServiceName)
	m.OtlpInsecure = boolEnvOrDefault(envOtelInsec, m.OtlpInsecure)
}
