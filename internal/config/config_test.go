package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/23skdu/hamming/internal/errors"
	"github.com/23skdu/hamming/internal/popcount"
)

func TestValidateConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateConfig_InvalidKernel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kernel = "sse4"
	if err := cfg.Validate(); err != ErrInvalidKernel {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidKernel)
	}
}

func TestValidateConfig_InvalidLogFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err != ErrInvalidLogFormat {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidLogFormat)
	}
}

func TestValidateConfig_InvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "trace"
	if err := cfg.Validate(); err != ErrInvalidLogLevel {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidLogLevel)
	}
}

func TestValidateConfig_InvalidSampleRatio(t *testing.T) {
	for _, ratio := range []float64{-0.1, 1.5} {
		cfg := DefaultConfig()
		cfg.TraceSampleRatio = ratio
		assert.Equal(t, ErrInvalidSampleRatio, cfg.Validate(), "ratio %v", ratio)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, popcount.ModeAuto, cfg.Mode())
}

func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("HAMMING_KERNEL", "portable")
	t.Setenv("HAMMING_LOG_LEVEL", "debug")
	t.Setenv("HAMMING_LOG_FORMAT", "console")
	t.Setenv("HAMMING_METRICS_ADDR", "127.0.0.1:9090")
	t.Setenv("HAMMING_OTLP_ENDPOINT", "localhost:4317")
	t.Setenv("HAMMING_TRACE_SAMPLE_RATIO", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "portable", cfg.Kernel)
	assert.Equal(t, popcount.ModePortable, cfg.Mode())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9090", cfg.MetricsAddr)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, 0.25, cfg.TraceSampleRatio)
}

func TestLoad_InvalidKernel(t *testing.T) {
	t.Setenv("HAMMING_KERNEL", "gpu")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKernel))
	assert.True(t, errors.Is(err, herrors.ErrConfiguration))
}

func TestLoadKernel(t *testing.T) {
	m, err := LoadKernel()
	require.NoError(t, err)
	assert.Equal(t, popcount.ModeAuto, m)

	t.Setenv("HAMMING_KERNEL", "portable")
	m, err = LoadKernel()
	require.NoError(t, err)
	assert.Equal(t, popcount.ModePortable, m)
}

func TestLoadKernel_IgnoresUnrelatedInvalidVars(t *testing.T) {
	t.Setenv("HAMMING_KERNEL", "hardware")
	t.Setenv("HAMMING_LOG_LEVEL", "trace")
	t.Setenv("HAMMING_LOG_FORMAT", "xml")
	t.Setenv("HAMMING_TRACE_SAMPLE_RATIO", "not-a-number")

	m, err := LoadKernel()
	require.NoError(t, err)
	assert.Equal(t, popcount.ModeHardware, m)

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadKernel_Invalid(t *testing.T) {
	t.Setenv("HAMMING_KERNEL", "gpu")

	m, err := LoadKernel()
	require.Error(t, err)
	assert.Equal(t, popcount.ModeAuto, m)
	assert.True(t, errors.Is(err, ErrInvalidKernel))
	assert.True(t, errors.Is(err, herrors.ErrConfiguration))
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HAMMING_KERNEL=hardware\nHAMMING_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("HAMMING_KERNEL")
		_ = os.Unsetenv("HAMMING_LOG_LEVEL")
	})

	cfg, err := LoadDotenv(path)
	require.NoError(t, err)
	assert.Equal(t, popcount.ModeHardware, cfg.Mode())
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadDotenv_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HAMMING_KERNEL=hardware\n"), 0o600))
	t.Setenv("HAMMING_KERNEL", "portable")

	cfg, err := LoadDotenv(path)
	require.NoError(t, err)
	assert.Equal(t, popcount.ModePortable, cfg.Mode())
}

func TestLoadDotenv_MissingFile(t *testing.T) {
	cfg, err := LoadDotenv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestMode_FallsBackToAuto(t *testing.T) {
	cfg := Config{Kernel: "bogus"}
	assert.Equal(t, popcount.ModeAuto, cfg.Mode())
}
