package sim_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/launchsim/internal/config"
	"github.com/san-kum/launchsim/internal/sim"
	"github.com/san-kum/launchsim/internal/vehicle"
)

func frcDriver(t *testing.T) (*sim.Driver, vehicle.Battery, sim.Config) {
	t.Helper()
	cfg := config.GetPreset("frc")
	require.NotNil(t, cfg)
	veh, mot, bat, tire, err := cfg.Specs()
	require.NoError(t, err)
	return sim.NewDriver(veh, mot, bat, tire), bat, sim.Config{Dt: cfg.Dt, Runtime: cfg.Runtime}
}

func smallPackDriver(t *testing.T, runtime float64) (*sim.Driver, vehicle.Battery, sim.Config) {
	t.Helper()
	cfg := config.GetPreset("frc-small-pack")
	require.NotNil(t, cfg)
	veh, mot, bat, tire, err := cfg.Specs()
	require.NoError(t, err)
	return sim.NewDriver(veh, mot, bat, tire), bat, sim.Config{Dt: cfg.Dt, Runtime: runtime}
}

func TestRunReferenceScenario(t *testing.T) {
	driver, bat, cfg := frcDriver(t)

	result, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)

	// floor(20/0.01) ticks plus the initial snapshot.
	assert.Equal(t, 2000, result.Ticks)
	require.Len(t, result.Snapshots, 2001)

	first := result.Snapshots[0]
	assert.Zero(t, first.X)
	assert.Zero(t, first.Time)
	assert.Equal(t, 1e-4, first.XDot)
	for _, w := range first.Wheels {
		assert.Zero(t, w.Amps)
		assert.Zero(t, w.Force)
		assert.Zero(t, w.Slip)
		assert.Zero(t, w.Omega)
	}

	totalLoad := first.TotalLoad()
	for i, snap := range result.Snapshots {
		require.False(t, math.IsNaN(snap.XDot) || math.IsInf(snap.XDot, 0), "snapshot %d", i)
		assert.GreaterOrEqual(t, snap.XDot, 0.0, "snapshot %d", i)
		assert.InDelta(t, totalLoad, snap.TotalLoad(), 1e-9, "snapshot %d load total", i)
		for w, ws := range snap.Wheels {
			assert.LessOrEqual(t, ws.Amps, bat.Burst+1e-9, "snapshot %d wheel %d", i, w)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	driver, _, cfg := frcDriver(t)
	cfg.Runtime = 2

	first, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)

	require.Equal(t, first.Snapshots, second.Snapshots)
	require.Equal(t, first.Metrics, second.Metrics)
}

func TestRunCurrentLimitedFromFirstTick(t *testing.T) {
	driver, bat, cfg := smallPackDriver(t, 0.5)

	result, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Greater(t, len(result.Snapshots), 1)

	// The ceiling binds immediately: the first computed tick's currents
	// sit exactly at the burst limit.
	for w, ws := range result.Snapshots[1].Wheels {
		assert.Equal(t, bat.Burst, ws.Amps, "wheel %d", w)
	}
	for i, snap := range result.Snapshots {
		for w, ws := range snap.Wheels {
			assert.LessOrEqual(t, ws.Amps, bat.Burst, "snapshot %d wheel %d", i, w)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	driver, _, _ := frcDriver(t)

	tests := []struct {
		name string
		cfg  sim.Config
	}{
		{"zero dt", sim.Config{Dt: 0, Runtime: 1}},
		{"negative dt", sim.Config{Dt: -0.01, Runtime: 1}},
		{"zero runtime", sim.Config{Dt: 0.01, Runtime: 0}},
		{"negative runtime", sim.Config{Dt: 0.01, Runtime: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := driver.Run(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunHonorsContext(t *testing.T) {
	driver, _, cfg := frcDriver(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := driver.Run(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Len(t, result.Snapshots, 1) // initial state only
}

type countingObserver struct {
	ticks int
}

func (c *countingObserver) OnTick(sim.Snapshot) { c.ticks++ }

func TestRunNotifiesObservers(t *testing.T) {
	driver, _, cfg := frcDriver(t)
	cfg.Runtime = 0.1

	obs := &countingObserver{}
	driver.AddObserver(obs)

	result, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, len(result.Snapshots), obs.ticks)
}

func TestColumnsMatchRow(t *testing.T) {
	cols := sim.Columns()
	var snap sim.Snapshot
	assert.Len(t, cols, 24)
	assert.Len(t, snap.Row(), len(cols))
	assert.Equal(t, "time_s", cols[0])
	assert.Equal(t, "amps_rf", cols[4])
	assert.Equal(t, "omega_rr", cols[23])
}
