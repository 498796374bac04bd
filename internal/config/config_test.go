package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"port": 9090,
		"database_url": "postgres://localhost/resume",
		"per_document": true,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/resume", cfg.DatabaseURL)
	assert.True(t, cfg.PerDocument)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "port: 7070\napi_key: abc\nmax_upload_bytes: 2048\nper_document: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.True(t, cfg.PerDocument)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "port: [unclosed")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty is valid", Config{}, ""},
		{"port out of range", Config{Port: 70000}, "'port'"},
		{"negative upload limit", Config{MaxUploadBytes: -1}, "'max_upload_bytes'"},
		{"non-postgres url", Config{DatabaseURL: "mysql://localhost"}, "'database_url'"},
		{"postgresql scheme", Config{DatabaseURL: "postgresql://localhost/db"}, ""},
		{"short jwt secret", Config{JWTSecret: "short"}, "'jwt_secret'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-file"}

	merged := cfg.MergeWithDefaults(Config{APIKey: "default", DatabaseURL: "postgres://db", Port: 8080, MaxUploadBytes: 100})

	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, "postgres://db", merged.DatabaseURL)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, int64(100), merged.MaxUploadBytes)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "9999")

	cfg := Config{APIKey: "file-key", JWTSecret: "file-secret-0123456789"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "file-secret-0123456789", cfg.JWTSecret, "empty env keeps the file value")
	assert.Equal(t, 9999, cfg.Port)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	cfg := Config{}
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Empty(t, cfg.APIKey, "a missing credential is not an error")
}
