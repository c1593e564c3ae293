package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sethgrid/beagle/internal/pet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitThenLoad(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	path, err := InitConfig(dir, "Rufus", now, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".beagle", "pet.toml"), path)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Rufus", cfg.Name)
	assert.True(t, cfg.CreatedAt.Equal(now))
	_, err = uuid.Parse(cfg.ID)
	assert.NoError(t, err, "init assigns the pet an id")
	assert.Equal(t, pet.DefaultConfig().WalkSpeed, cfg.WalkSpeed)
	assert.Len(t, cfg.Animations, len(pet.AllStates))

	_, err = InitConfig(dir, "Again", now, false)
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = InitConfig(dir, "Again", now, true)
	require.NoError(t, err)
	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NotEqual(t, cfg.ID, again.ID)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.toml")
	doc := `
name = "Scout"
runSpeed = 240.0
sniffEnabled = false

[animations.jump]
frames = 4
duration = 0.8
loop = false
sprite = "jump"

[[landmarks]]
name = "desk"
x = 10.0
y = 400.0
width = 200.0
height = 40.0
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Scout", cfg.Name)
	assert.Equal(t, 240.0, cfg.RunSpeed)
	assert.Equal(t, pet.DefaultConfig().WalkSpeed, cfg.WalkSpeed)
	assert.False(t, cfg.SniffEnabled)
	assert.Equal(t, 0.8, cfg.Animation(pet.StateJump).Duration)
	assert.Equal(t, 0.6, cfg.Animation(pet.StateRoll).Duration)
	require.Len(t, cfg.Landmarks, 1)
	assert.Equal(t, "desk", cfg.Landmarks[0].Name)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		doc  string
	}{
		{"not toml", "name = "},
		{"unknown state", "[animations.dance]\nframes = 2\nduration = 1.0\n"},
		{"bad frames", "[animations.jump]\nframes = 0\nduration = 1.0\n"},
		{"bad volume", "volume = 3.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".beagle", "session.toml")

	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.False(t, s.AmbientPlaying)

	saved := Session{AmbientPlaying: true, SavedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, SaveSession(saved, path))

	s, err = LoadSession(path)
	require.NoError(t, err)
	assert.True(t, s.AmbientPlaying)
	assert.True(t, s.SavedAt.Equal(saved.SavedAt))
}

func TestLoadSessionCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("ambientPlaying = maybe"), 0644))

	s, err := LoadSession(path)
	assert.Error(t, err)
	assert.False(t, s.AmbientPlaying)
}
