package experiment_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/kgate/experiment"
	"github.com/katalvlaran/kgate/gating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := experiment.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 6, cfg.Samples)
	assert.Equal(t, 2, cfg.Models)
	assert.Equal(t, 3, cfg.Tries)
	assert.Equal(t, 0.5, cfg.Std)
	assert.Equal(t, 10, cfg.TestFactor)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*experiment.Config)
	}{
		{"zero samples", func(c *experiment.Config) { c.Samples = 0 }},
		{"negative models", func(c *experiment.Config) { c.Models = -1 }},
		{"zero tries", func(c *experiment.Config) { c.Tries = 0 }},
		{"negative std", func(c *experiment.Config) { c.Std = -0.1 }},
		{"zero test factor", func(c *experiment.Config) { c.TestFactor = 0 }},
		{"zero neighbors", func(c *experiment.Config) { c.Neighbors = 0 }},
		{"negative timeout", func(c *experiment.Config) { c.Timeout = -time.Second }},
		{"unknown method", func(c *experiment.Config) { c.Method = "simplex" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := experiment.DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), experiment.ErrInvalidConfig)
		})
	}

	t.Run("zero std is allowed", func(t *testing.T) {
		cfg := experiment.DefaultConfig()
		cfg.Std = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_GatingMethod(t *testing.T) {
	cfg := experiment.DefaultConfig()

	m, err := cfg.GatingMethod()
	require.NoError(t, err)
	assert.Equal(t, gating.MethodPowell, m)

	cfg.Method = "neldermead"
	m, err = cfg.GatingMethod()
	require.NoError(t, err)
	assert.Equal(t, gating.MethodNelderMead, m)
}

func TestParseConfig_OverridesDefaults(t *testing.T) {
	cfg, err := experiment.ParseConfig(strings.NewReader(`
samples: 40
models: 5
std: 0.25
timeout: 90s
`))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Samples)
	assert.Equal(t, 5, cfg.Models)
	assert.Equal(t, 0.25, cfg.Std)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Tries, "unset keys keep their defaults")
	assert.Equal(t, "powell", cfg.Method)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := experiment.ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, experiment.DefaultConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := experiment.ParseConfig(strings.NewReader("samplez: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = experiment.ParseConfig(strings.NewReader("tries: 0\n"))
	assert.ErrorIs(t, err, experiment.ErrInvalidConfig)

	_, err = experiment.ParseConfig(strings.NewReader("samples: [1, 2]\n"))
	assert.Error(t, err)
}

func TestLoadConfig_FromFile(t *testing.T) {
	cfg := experiment.DefaultConfig()
	cfg.Seed = 99
	cfg.Timeout = 2 * time.Minute
	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 2m0s")

	path := filepath.Join(t.TempDir(), "kgate.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := experiment.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = experiment.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
