package motion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syinaric/A.U.R.A.-Farm/pkg/kinematics"
)

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aura.json")

	cfg := DefaultConfig()
	cfg.Geometry.Mount.X = 0.05
	cfg.Motion.SafeHeight = 0.1
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	require.NoError(t, loaded.Validate())
}

func TestConfig_MissingFileFallsBack(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_ValidateAggregates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geometry.LowerArm = -1
	delete(cfg.Servos, kinematics.Elbow)
	cfg.Motion.DwellSec = -5

	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *kinematics.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfig_PlannerFromBundle(t *testing.T) {
	p, err := DefaultConfig().Planner()
	require.NoError(t, err)

	schedule, err := p.Home()
	require.NoError(t, err)
	assert.Len(t, schedule, 1)
}
