package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	conf := NewDefaultConfig()

	assert.False(t, conf.Debug)
	assert.Equal(t, 3333, conf.Port)
	assert.NotNil(t, conf.Viper)
	assert.NotNil(t, conf.Printers)
	assert.NotNil(t, conf.InReader)
	assert.NotNil(t, conf.OutWriter)
	assert.NotNil(t, conf.ErrWriter)
}

func TestSetupViper_Defaults(t *testing.T) {
	v := setupViper()

	assert.Equal(t, 3333, v.GetInt("port"))
	assert.Equal(t, "http://localhost:11434", v.GetString("ai.base_url"))
	assert.Equal(t, "codellama:7b", v.GetString("ai.model"))
	assert.Equal(t, 120*time.Second, v.GetDuration("ai.timeout"))
	assert.Equal(t, 60*time.Second, v.GetDuration("review.analyze_timeout"))
	assert.Equal(t, 120*time.Second, v.GetDuration("review.ai_timeout"))
}

func TestSetupViper_CredentialEnvBindings(t *testing.T) {
	t.Setenv("GITHUB_APPID", "12345")
	t.Setenv("GITHUB_INSTALLATION_ID", "67890")
	t.Setenv("GITHUB_PRIVATE_KEY_PATH", "/tmp/key.pem")
	t.Setenv("BITBUCKET_EMAIL", "bot@example.com")
	t.Setenv("BITBUCKET_TOKEN", "app-password")

	v := setupViper()

	assert.Equal(t, "12345", v.GetString("github.app_id"))
	assert.Equal(t, "67890", v.GetString("github.installation_id"))
	assert.Equal(t, "/tmp/key.pem", v.GetString("github.private_key_path"))
	assert.Equal(t, "bot@example.com", v.GetString("bitbucket.email"))
	assert.Equal(t, "app-password", v.GetString("bitbucket.token"))
}

func TestSetupViper_PrefixedEnvOverride(t *testing.T) {
	t.Setenv("REVIEWD_PORT", "8080")
	t.Setenv("REVIEWD_AI_MODEL", "llama3")

	v := setupViper()

	assert.Equal(t, 8080, v.GetInt("port"))
	assert.Equal(t, "llama3", v.GetString("ai.model"))
}

func TestGetConfigFilePath(t *testing.T) {
	path, err := GetConfigFilePath()
	require.NoError(t, err)
	assert.Contains(t, path, ".config/reviewd")
	assert.Contains(t, path, "config.yml")
}

func TestGetConfigDirPath(t *testing.T) {
	dir, err := GetConfigDirPath()
	require.NoError(t, err)
	assert.Contains(t, dir, ".config/reviewd")
}
