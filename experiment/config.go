// SPDX-License-Identifier: MIT

package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/katalvlaran/kgate/gating"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig reports a configuration that cannot drive a run.
var ErrInvalidConfig = errors.New("experiment: invalid config")

// Config drives a Monte-Carlo comparison of gate strategies.
type Config struct {
	// Samples is the number of training cases per trial.
	Samples int `yaml:"samples"`
	// Models is the number of contender models.
	Models int `yaml:"models"`
	// Tries is the number of independent trials.
	Tries int `yaml:"tries"`
	// Std is the noise standard deviation added to the target.
	Std float64 `yaml:"std"`
	// Seed makes a run reproducible.
	Seed uint64 `yaml:"seed"`
	// TestFactor is the number of test cases per training case.
	TestFactor int `yaml:"test_factor"`
	// Neighbors is k for the nearest-neighbour contenders.
	Neighbors int `yaml:"neighbors"`
	// Method is the multi-gate bandwidth search: "powell" or "neldermead".
	Method string `yaml:"method"`
	// Timeout bounds the whole run; zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the settings of a small demonstration run.
func DefaultConfig() Config {
	return Config{
		Samples:    6,
		Models:     2,
		Tries:      3,
		Std:        0.5,
		Seed:       1,
		TestFactor: 10,
		Neighbors:  3,
		Method:     "powell",
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples must be > 0, got %d", ErrInvalidConfig, c.Samples)
	case c.Models <= 0:
		return fmt.Errorf("%w: models must be > 0, got %d", ErrInvalidConfig, c.Models)
	case c.Tries <= 0:
		return fmt.Errorf("%w: tries must be > 0, got %d", ErrInvalidConfig, c.Tries)
	case !(c.Std >= 0):
		return fmt.Errorf("%w: std must be >= 0, got %v", ErrInvalidConfig, c.Std)
	case c.TestFactor <= 0:
		return fmt.Errorf("%w: test_factor must be > 0, got %d", ErrInvalidConfig, c.TestFactor)
	case c.Neighbors <= 0:
		return fmt.Errorf("%w: neighbors must be > 0, got %d", ErrInvalidConfig, c.Neighbors)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must be >= 0, got %s", ErrInvalidConfig, c.Timeout)
	}
	if _, err := c.GatingMethod(); err != nil {
		return err
	}

	return nil
}

// GatingMethod maps Method onto the gating search.
func (c Config) GatingMethod() (gating.Method, error) {
	switch c.Method {
	case "", "powell":
		return gating.MethodPowell, nil
	case "neldermead":
		return gating.MethodNelderMead, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q (want powell or neldermead)", ErrInvalidConfig, c.Method)
	}
}

// ParseConfig decodes YAML from r over DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("experiment: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads a YAML file; see ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("experiment: read config: %w", err)
	}

	return ParseConfig(bytes.NewReader(data))
}

// YAML encodes c.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
