package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Recommend.Delay)
	assert.Equal(t, 14, cfg.Map.Zoom)
	assert.Equal(t, 35.0191, cfg.Map.Center.Lat)
	assert.False(t, cfg.Filter.StrictThresholds)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  cors_origins:
    - http://localhost:3000
logging:
  level: debug
  format: console
recommend:
  delay: 250ms
filter:
  strict_thresholds: true
map:
  zoom: 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Recommend.Delay)
	assert.True(t, cfg.Filter.StrictThresholds)
	assert.Equal(t, 12, cfg.Map.Zoom)

	// untouched keys keep their defaults
	assert.Equal(t, 35.0191, cfg.Map.Center.Lat)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	t.Setenv("MATJIB_PORT", "7070")
	t.Setenv("MATJIB_RECOMMEND_DELAY", "2s")
	t.Setenv("MATJIB_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("NAVER_MAPS_CLIENT_ID", "abc123")
	unsetEnv(t, "MATJIB_MAP_CLIENT_ID")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Recommend.Delay)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "abc123", cfg.Map.ClientID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"zero workers", "recommend:\n  workers: 0\n"},
		{"inverted bounds", "map:\n  bounds:\n    south_west:\n      lat: 36\n"},
		{"bad latitude", "map:\n  center:\n    lat: 123\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvTransformFunc(t *testing.T) {
	unsetEnv(t, "MATJIB_MAP_CLIENT_ID")
	assert.Equal(t, "map.client_id", envTransformFunc("NAVER_MAPS_CLIENT_ID"))
	assert.Equal(t, "map.client_id", envTransformFunc("MATJIB_MAP_CLIENT_ID"))
	assert.Equal(t, "filter.strict_thresholds", envTransformFunc("MATJIB_FILTER_STRICT_THRESHOLDS"))
	assert.Empty(t, envTransformFunc("PATH"))
}

func TestLoad_PrefixedClientIDWins(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	t.Setenv("NAVER_MAPS_CLIENT_ID", "from-naver")
	t.Setenv("MATJIB_MAP_CLIENT_ID", "from-matjib")

	for i := 0; i < 5; i++ {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-matjib", cfg.Map.ClientID)
	}

	assert.Empty(t, envTransformFunc("NAVER_MAPS_CLIENT_ID"))
	assert.Equal(t, "map.client_id", envTransformFunc("MATJIB_MAP_CLIENT_ID"))
}

// unsetEnv removes key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
