package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RMM_API_URL", "RMM_API_KEY", "RMM_SECRET_KEY",
		"SOC_API_URL", "SOC_API_KEY", "AV_API_URL", "AV_SECRET",
		"EDR_CLIENT_ID", "EDR_CLIENT_SECRET",
		"KYBER_DEBUG_LOG", "KYBER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)
	_, err := load(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RMM_API_URL")
	assert.Contains(t, err.Error(), "RMM_SECRET_KEY")
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("RMM_API_URL", "https://rmm.example.test")
	t.Setenv("RMM_API_KEY", "key")
	t.Setenv("RMM_SECRET_KEY", "secret")

	cfg, err := load(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, "https://rmm.example.test", cfg.RMM.APIURL)
	assert.False(t, cfg.HasSOC())
	assert.False(t, cfg.HasAV())
	assert.False(t, cfg.HasEDR())
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config")
	data := []byte("rmm:\n  api_url: https://file.example.test\n  api_key: filekey\n  secret_key: filesecret\nsoc:\n  api_url: https://soc.example.test\n  api_key: sockey\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("RMM_API_KEY", "envkey")

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.test", cfg.RMM.APIURL)
	assert.Equal(t, "envkey", cfg.RMM.APIKey, "env must win over file")
	assert.True(t, cfg.HasSOC())
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("rmm: [not a map"), 0o600))
	_, err := load(path)
	require.Error(t, err)
}
