package motion

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/arm"
	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

// DefaultConfigFile is the process-wide configuration file, loaded once
// at startup and never reloaded mid-operation.
const DefaultConfigFile = "aura.json"

// Config bundles everything the planner needs: arm geometry, servo
// calibration, the camera table calibration and the motion parameters.
type Config struct {
	Geometry *kinematics.Geometry        `json:"geometry"`
	Servos   arm.Calibration             `json:"servos"`
	Table    kinematics.TableCalibration `json:"table"`
	Motion   Params                      `json:"motion"`
}

// DefaultConfig returns the stock build configuration.
func DefaultConfig() *Config {
	return &Config{
		Geometry: kinematics.DefaultGeometry(),
		Servos:   arm.DefaultCalibration(),
		Table:    kinematics.DefaultTableCalibration(),
		Motion:   DefaultParams(),
	}
}

// Validate checks every invariant in the bundle, aggregated.
func (c *Config) Validate() error {
	if c.Geometry == nil {
		return &kinematics.ConfigError{Field: "geometry", Reason: "missing"}
	}
	return multierr.Combine(
		c.Geometry.Validate(),
		c.Servos.Validate(),
		c.Motion.validate(),
	)
}

// Planner builds the planner from the validated bundle.
func (c *Config) Planner() (*Planner, error) {
	return NewPlanner(c.Geometry, c.Servos, c.Motion)
}

// LoadConfig loads configuration from the default config file, falling
// back to the stock defaults when the file does not exist.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo writes the configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
