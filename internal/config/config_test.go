package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/launchsim/internal/vehicle"
)

func TestDefaultConfigIsReference(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.01, cfg.Dt)
	assert.Equal(t, 20.0, cfg.Runtime)
	assert.Equal(t, 2000.0, cfg.Motor.Kv)
	assert.Equal(t, 5.0, cfg.Vehicle.Mass)
}

func TestSpecsBuildsValidatedValues(t *testing.T) {
	cfg := GetPreset("frc")
	require.NotNil(t, cfg)

	veh, mot, bat, tire, err := cfg.Specs()
	require.NoError(t, err)

	assert.InDelta(t, 0.252, veh.Wheelbase, 1e-12)
	assert.InDelta(t, 1/(2000*0.10472), mot.Kt, 1e-15)
	assert.InDelta(t, 97.5, bat.Burst, 1e-9)
	assert.Equal(t, 0.032, tire.Radius)
}

func TestSpecsRejectsBadValues(t *testing.T) {
	cfg := GetPreset("frc")
	require.NotNil(t, cfg)
	cfg.Vehicle.Mass = -1

	_, _, _, _, err := cfg.Specs()
	require.ErrorIs(t, err, vehicle.ErrInvalidSpec)
}

func TestPresetLookup(t *testing.T) {
	assert.Nil(t, GetPreset("nope"))
	assert.Contains(t, ListPresets(), "frc")

	// GetPreset hands out copies; mutating one must not leak back.
	first := GetPreset("frc")
	first.Vehicle.Mass = 99
	assert.Equal(t, 5.0, GetPreset("frc").Vehicle.Mass)
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("frc-heavy")
	require.NotNil(t, cfg)

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runtime: 5\nmotor:\n  kv: 1500\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Runtime)
	assert.Equal(t, 1500.0, cfg.Motor.Kv)
	// Untouched fields come from the default preset.
	assert.Equal(t, 0.01, cfg.Dt)
	assert.Equal(t, 0.8, cfg.Motor.Efficiency)
}
