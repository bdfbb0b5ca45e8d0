package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "nats", cfg.Events.Broker)
	assert.Equal(t, 8*time.Second, cfg.Simulation.AssignmentInterval)
	assert.Equal(t, 2*time.Second, cfg.Simulation.MotionInterval)
	assert.Equal(t, 10*time.Second, cfg.Simulation.SyncInterval)
	assert.Equal(t, 15*time.Second, cfg.Simulation.RideCreationMin)
	assert.Equal(t, 30*time.Second, cfg.Simulation.RideCreationMax)
	assert.Equal(t, time.Hour, cfg.Simulation.Duration)
	assert.Equal(t, 3, cfg.Simulation.SyncMaxRetries)
	assert.Equal(t, 200, cfg.Simulation.RideFetchLimit)
	assert.False(t, cfg.Simulation.ForceSyncAfterWrite)
}

func TestInitConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("SIM_MOTION_INTERVAL", "500ms")
	t.Setenv("SIM_ASSIGNMENT_POLICY", "nearest")
	t.Setenv("SIM_FORCE_SYNC_AFTER_WRITE", "true")
	t.Setenv("SIM_SEARCH_RADIUS_KM", "2.5")

	cfg := InitConfig("")

	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Simulation.MotionInterval)
	assert.Equal(t, "nearest", cfg.Simulation.AssignmentPolicy)
	assert.True(t, cfg.Simulation.ForceSyncAfterWrite)
	assert.Equal(t, 2.5, cfg.Simulation.SearchRadiusKm)
}

func TestGetEnvHelpers_InvalidFallsBack(t *testing.T) {
	t.Setenv("BAD_INT", "abc")
	t.Setenv("BAD_BOOL", "maybe")
	t.Setenv("BAD_FLOAT", "x1")
	t.Setenv("BAD_DURATION", "soon")

	assert.Equal(t, 7, GetEnvAsInt("BAD_INT", 7))
	assert.True(t, GetEnvAsBool("BAD_BOOL", true))
	assert.Equal(t, 1.5, GetEnvAsFloat("BAD_FLOAT", 1.5))
	assert.Equal(t, time.Minute, GetEnvAsDuration("BAD_DURATION", time.Minute))
}
