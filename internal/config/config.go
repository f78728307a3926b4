// Package config loads process configuration from HAMMING_* environment
// variables and optional .env files.
package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	herrors "github.com/23skdu/hamming/internal/errors"
	"github.com/23skdu/hamming/internal/popcount"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "HAMMING"

// Config validation errors
var (
	ErrInvalidKernel      = errors.New("kernel must be auto, hardware or portable")
	ErrInvalidLogFormat   = errors.New("log_format must be 'json', 'text' or 'console'")
	ErrInvalidLogLevel    = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidSampleRatio = errors.New("trace_sample_ratio must be between 0 and 1")
)

// Config holds the settings shared by the library and the bench command.
type Config struct {
	// Kernel selects the population count kernel: auto, hardware or portable.
	Kernel string `envconfig:"KERNEL" default:"auto"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// MetricsAddr is where the bench command serves /metrics. Empty disables it.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`

	// OTLPEndpoint is an OTLP gRPC collector for bench spans. Empty disables export.
	OTLPEndpoint     string  `envconfig:"OTLP_ENDPOINT" default:""`
	TraceSampleRatio float64 `envconfig:"TRACE_SAMPLE_RATIO" default:"1"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		Kernel:           string(popcount.ModeAuto),
		LogLevel:         "info",
		LogFormat:        "json",
		TraceSampleRatio: 1,
	}
}

// Load reads HAMMING_* variables into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, herrors.WrapConfigurationError(err, "load_config", "failed to process environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, herrors.WrapConfigurationError(err, "load_config", "invalid configuration")
	}
	return cfg, nil
}

// LoadKernel reads HAMMING_KERNEL alone, so that an invalid unrelated
// variable cannot override the kernel toggle.
func LoadKernel() (popcount.Mode, error) {
	var k struct {
		Kernel string `envconfig:"KERNEL" default:"auto"`
	}
	if err := envconfig.Process(EnvPrefix, &k); err != nil {
		return popcount.ModeAuto, herrors.WrapConfigurationError(err, "load_kernel", "failed to process environment")
	}
	m, err := popcount.ParseMode(k.Kernel)
	if err != nil {
		return popcount.ModeAuto, herrors.WrapConfigurationError(ErrInvalidKernel, "load_kernel", err.Error())
	}
	return m, nil
}

// LoadDotenv loads the given .env files (".env" when none are given) into
// the environment, then calls Load. Missing files are skipped; variables
// already set in the environment win.
func LoadDotenv(paths ...string) (Config, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, herrors.WrapConfigurationError(err, "load_dotenv", "failed to read "+p)
		}
	}
	return Load()
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if _, err := popcount.ParseMode(c.Kernel); err != nil {
		return ErrInvalidKernel
	}
	switch c.LogFormat {
	case "json", "text", "console":
	default:
		return ErrInvalidLogFormat
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return ErrInvalidSampleRatio
	}
	return nil
}

// Mode returns the kernel mode. It assumes Validate succeeded and falls
// back to auto otherwise.
func (c *Config) Mode() popcount.Mode {
	m, err := popcount.ParseMode(c.Kernel)
	if err != nil {
		return popcount.ModeAuto
	}
	return m
}
