package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-canvas/internal/config"
)

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas_api_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"username": "user@example.com",
		"password": "secret",
		"form_id": 77
	}`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, int64(77), cfg.FormID)
	assert.True(t, cfg.HasAuth())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bearer_token: tok-123\nform_id: 42\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", cfg.BearerToken)
	assert.Equal(t, int64(42), cfg.FormID)
	assert.True(t, cfg.HasAuth())
}

func TestLoadMissingFileWritesStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas_api_config.json")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.HasAuth())

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"username"`)

	// The starter parses cleanly on the next load.
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestLoadRejectsMalformedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestHasAuth(t *testing.T) {
	assert.False(t, config.Config{Username: "user"}.HasAuth())
	assert.False(t, config.Config{Password: "pass"}.HasAuth())
	assert.True(t, config.Config{Username: "user", Password: "pass"}.HasAuth())
	assert.True(t, config.Config{BearerToken: "tok"}.HasAuth())
}
