package config

import (
	"os"
	"strconv"
)

// AgreementConfig holds the default agreement values used when the CLI flags are not set.
type AgreementConfig struct {
	Branch     int
	MemberCode int
	Registered bool
}

// TracingConfig holds the OpenTelemetry settings read by internal/otel.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	Protocol    string
	Endpoint    string
	Sampler     string
	SamplerArg  string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	LogLevel        string
	MetricsTextfile string
	Agreement       AgreementConfig
	Tracing         TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	endpoint := getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	if endpoint == "" {
		endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	}

	return &AppConfig{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
		Agreement: AgreementConfig{
			Branch:     getEnvInt("SICOOB_BRANCH", 0),
			MemberCode: getEnvInt("SICOOB_MEMBER_CODE", 0),
			Registered: getEnvBool("SICOOB_REGISTERED", true),
		},
		Tracing: TracingConfig{
			// Off unless explicitly enabled.
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", true),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "sicoob-boleto"),
			Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			Endpoint:    endpoint,
			Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio"),
			SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
