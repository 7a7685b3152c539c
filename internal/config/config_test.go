package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcade.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
variant = "topic-journey"
seed = 42
fixed_step = "16ms"

[api]
base_url = "https://scores.example.test/api"
user_id = 7
game_id = 3
timeout = "2s"

[display]
frontend = "terminal"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "topic-journey", cfg.Game.Variant)
	assert.EqualValues(t, 42, cfg.Game.Seed)
	assert.Equal(t, 16*time.Millisecond, cfg.Game.FixedStep.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.MaxFrameDelta.Duration, "unset keys keep defaults")
	assert.Equal(t, 60, cfg.Game.FrameRate)
	assert.Equal(t, "https://scores.example.test/api", cfg.API.BaseURL)
	assert.EqualValues(t, 7, cfg.API.UserID)
	assert.Equal(t, 3, cfg.API.GameID)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, "terminal", cfg.Display.Frontend)
	assert.Equal(t, "data/yaml/labels.yaml", cfg.Data.Labels)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"frontend":   "[display]\nfrontend = \"browser\"\n",
		"frame rate": "[game]\nframe_rate = 0\n",
		"duration":   "[game]\nfixed_step = \"soon\"\n",
		"tiny grid":  "[terminal]\ncols = 5\n",
		"no timeout": "[api]\ntimeout = \"0s\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestValidateFrontends(t *testing.T) {
	for _, fe := range []string{"window", "terminal", "headless"} {
		cfg := defaults()
		cfg.Display.Frontend = fe
		assert.NoError(t, cfg.Validate(), fe)
	}
}

func TestValidateTimeout(t *testing.T) {
	cfg := defaults()
	cfg.API.Timeout = Duration{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.timeout")
}

func TestLoadBindings(t *testing.T) {
	path := writeConfig(t, `
[bindings]
j = "left"
l = "right"
k = "shoot"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"j": "left", "l": "right", "k": "shoot"}, cfg.Bindings)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ARCADE_API_BASE_URL": "http://api.local",
		"ARCADE_API_TOKEN":    "secret",
		"ARCADE_USER_ID":      "99",
		"ARCADE_FRONTEND":     "terminal",
	}
	cfg := defaults()
	require.NoError(t, applyEnv(cfg, func(k string) string { return env[k] }))

	assert.Equal(t, "http://api.local", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.EqualValues(t, 99, cfg.API.UserID)
	assert.Equal(t, "terminal", cfg.Display.Frontend)
}

func TestApplyEnvBadUserID(t *testing.T) {
	cfg := defaults()
	err := applyEnv(cfg, func(k string) string {
		if k == "ARCADE_USER_ID" {
			return "seven"
		}
		return ""
	})
	require.Error(t, err)
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv("ARCADE_CONFIG", "/etc/arcade.toml")
	assert.Equal(t, "/etc/arcade.toml", Path())
	t.Setenv("ARCADE_CONFIG", "")
	assert.Equal(t, "config/arcade.toml", Path())
}
