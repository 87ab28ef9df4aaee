package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCORE_LEDGER_CAPACITY", "100")
	t.Setenv("BOOTSTRAP_ITERATIONS", "250")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 100, cfg.ScoreLedgerCapacity)
	assert.Equal(t, 250, cfg.BootstrapIterations)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_RejectsNonPositiveCapacity(t *testing.T) {
	t.Setenv("SCORE_LEDGER_CAPACITY", "-5")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "score ledger capacity")
}

func TestLoad_IgnoresUnparseableValues(t *testing.T) {
	t.Setenv("BOOTSTRAP_ITERATIONS", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, Default().BootstrapIterations, cfg.BootstrapIterations)
}
