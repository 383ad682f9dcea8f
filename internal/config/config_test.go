package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads valid config", func(t *testing.T) {
		path := writeTempConfig(t, `{
			"port": 8090,
			"base_url": "https://cv.example.com",
			"database_url": "postgres://localhost/cv_studio",
			"locale": "en"
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 8090, cfg.Port)
		assert.Equal(t, "https://cv.example.com", cfg.BaseURL)
		assert.Equal(t, "postgres://localhost/cv_studio", cfg.DatabaseURL)
		assert.Equal(t, "en", cfg.Locale)
	})

	t.Run("empty path fails", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		path := writeTempConfig(t, `{"port": `)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := Config{Port: 8080, Locale: "fr"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("empty config passes", func(t *testing.T) {
		cfg := Config{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("out of range port fails", func(t *testing.T) {
		cfg := Config{Port: 70000}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown locale fails", func(t *testing.T) {
		cfg := Config{Locale: "de"}
		assert.Error(t, cfg.Validate())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Port:        8080,
		BaseURL:     "http://localhost:8080",
		DatabaseURL: "postgres://localhost/cv_studio",
		Locale:      "fr",
	}

	t.Run("empty fields take defaults", func(t *testing.T) {
		cfg := Config{}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, 8080, merged.Port)
		assert.Equal(t, "http://localhost:8080", merged.BaseURL)
		assert.Equal(t, "fr", merged.Locale)
	})

	t.Run("set fields win over defaults", func(t *testing.T) {
		cfg := Config{Port: 9000, Locale: "en"}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, 9000, merged.Port)
		assert.Equal(t, "en", merged.Locale)
		assert.Equal(t, "postgres://localhost/cv_studio", merged.DatabaseURL)
	})
}
