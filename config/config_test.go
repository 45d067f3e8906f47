package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecdar/reveal/config"
)

func TestNew_DefaultsAreUsableWithNoOptions(t *testing.T) {
	t.Parallel()

	c := config.New()
	assert.Greater(t, c.CacheSize, 0)
	assert.NotEmpty(t, c.LogLevel)
}

func TestNew_OptionsOverrideDefaults(t *testing.T) {
	t.Parallel()

	c := config.New(config.WithCacheSize(10), config.WithLogLevel("debug"))
	assert.Equal(t, 10, c.CacheSize)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestWithCacheSize_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { config.WithCacheSize(0) })
}

func TestFromEnv_RejectsMalformedCacheSize(t *testing.T) {
	t.Setenv("RVL_CACHE_SIZE", "not-a-number")
	_, err := config.FromEnv()
	require.Error(t, err)

	var envErr *config.EnvError
	assert.ErrorAs(t, err, &envErr)
	assert.Equal(t, "RVL_CACHE_SIZE", envErr.Var)
}

func TestFromEnv_AcceptsValidOverrides(t *testing.T) {
	t.Setenv("RVL_CACHE_SIZE", "64")
	t.Setenv("RVL_LOG_LEVEL", "warn")
	t.Setenv("RVL_KERNEL_MODE", "dbm")

	c, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 64, c.CacheSize)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, config.KernelDBM, c.KernelMode)
}
