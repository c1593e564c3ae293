package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.Touch)
	assert.Zero(t, s.FPS)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BEAGLE_LOG_LEVEL", "debug")
	t.Setenv("BEAGLE_LOG_FILE", "/tmp/beagle.log")
	t.Setenv("BEAGLE_TOUCH", "true")
	t.Setenv("BEAGLE_REDUCED_MOTION", "1")
	t.Setenv("BEAGLE_FPS", "30")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Touch)
	assert.True(t, s.ReducedMotion)
	assert.Equal(t, 30, s.FPS)

	lc := s.Logging()
	assert.Equal(t, "/tmp/beagle.log", lc.File)
	assert.Equal(t, "debug", lc.Level)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("BEAGLE_FPS", "fast")
	_, err := Load()
	assert.Error(t, err)
	assert.Equal(t, Default(), LoadOrDefault())
}
