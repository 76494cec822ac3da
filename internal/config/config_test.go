package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("STORE_KEY_PREFIX", "")
	t.Setenv("BUSY_DELAY_MS", "")
	t.Setenv("CURRENCY_SYMBOL", "")

	cfg := Load()

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "lakshmi_", cfg.KeyPrefix)
	assert.Equal(t, time.Duration(0), cfg.BusyDelay())
	assert.Equal(t, "₹", cfg.CurrencySymbol)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverRedis)
	t.Setenv("BUSY_DELAY_MS", "800")
	t.Setenv("LOGIN_DELAY_MS", "not-a-number")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg := Load()

	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, 800*time.Millisecond, cfg.BusyDelay())
	assert.Equal(t, time.Duration(0), cfg.LoginDelay())
	assert.True(t, cfg.SeedDemoData)
}

func TestLocation(t *testing.T) {
	cfg := &Config{ReportTimezone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.ReportTimezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.ReportTimezone = "Nowhere/Invalid"
	_, err = cfg.Location()
	assert.Error(t, err)
}
