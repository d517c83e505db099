package xab

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// DefaultConfig returns a default configuration: ν = 1, ρ = 0.75, δ = 0.01,
// rewards in a range of width 1 and a time based seed.
func DefaultConfig() Config {
	return Config{
		Nu:            1,
		Rho:           0.75,
		Delta:         0.01,
		Bound:         1,
		Seed:          time.Now().UnixNano(),
		Rounds:        100,
		VarianceAware: false,
		ProgressChan:  nil, // Default to no progress updates.
	}
}

// Validate checks that every hyperparameter is in its range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(ErrValidation, "config: %v", err)
	}

	return nil
}

// LoadConfig loads configuration with priority: env > file > defaults.
//
// Parameters:
//   - path: YAML or JSON file, optional. A missing file is not an error.
//
// Environment overrides: XAB_NU, XAB_RHO, XAB_DELTA, XAB_BOUND, XAB_SEED,
// XAB_ROUNDS, XAB_VARIANCE_AWARE.
//
// Returns:
// - Config: Merged, validated configuration
// - error: Non-nil if the file can't be parsed or the result is invalid
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, errors.WithMessage(err, "load config file")
		}
	}

	loadConfigFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return errors.Wrapf(jsonErr, "parse config (tried YAML and JSON): YAML error: %v", err)
		}
	}

	return nil
}

func loadConfigFromEnv(config *Config) {
	floats := map[string]*float64{
		"XAB_NU":    &config.Nu,
		"XAB_RHO":   &config.Rho,
		"XAB_DELTA": &config.Delta,
		"XAB_BOUND": &config.Bound,
	}
	for name, field := range floats {
		if v := os.Getenv(name); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*field = f
			}
		}
	}

	if v := os.Getenv("XAB_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Seed = i
		}
	}
	if v := os.Getenv("XAB_ROUNDS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Rounds = i
		}
	}
	if v := os.Getenv("XAB_VARIANCE_AWARE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.VarianceAware = b
		}
	}
}
