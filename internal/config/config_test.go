package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GHCARD_USER", "GHCARD_TOKEN", "GHCARD_API_URL", "GHCARD_OUTPUT", "GHCARD_TOP"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultRetries, cfg.Retries)
	assert.Equal(t, DefaultTimeout, cfg.Timeout.Duration)
	assert.Equal(t, 0, cfg.TopLanguages)
	assert.False(t, cfg.IncludeForks)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "ghcard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
user = "from-file"
output = "card.svg"
api_url = "https://ghe.example.com/api/v3"
top_languages = 6
include_forks = true
shuffle_palette = true
palette_seed = 7
retries = 1
timeout = "3s"
`), 0o644))

	t.Setenv("GHCARD_USER", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.User)
	assert.Equal(t, "card.svg", cfg.Output)
	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.APIURL)
	assert.Equal(t, 6, cfg.TopLanguages)
	assert.True(t, cfg.IncludeForks)
	assert.True(t, cfg.ShufflePalette)
	assert.Equal(t, uint64(7), cfg.PaletteSeed)
	assert.Equal(t, 1, cfg.Retries)
	assert.Equal(t, 3*time.Second, cfg.Timeout.Duration)
}

func TestLoad_BadTop(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GHCARD_TOP", "many")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{User: "me", Output: "x.svg"}, false},
		{"no user", Config{Output: "x.svg"}, true},
		{"no output", Config{User: "me"}, true},
		{"negative top", Config{User: "me", Output: "x.svg", TopLanguages: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
