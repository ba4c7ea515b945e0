package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "apitest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTranscriptPath(), cfg.Transcript)
	assert.Equal(t, DefaultTranscriptName, filepath.Base(cfg.Transcript))
	assert.Equal(t, time.Second*10, cfg.Timeout)
	assert.Equal(t, time.Duration(0), cfg.AwaitTimeout)
	assert.Equal(t, float64(0), cfg.RateLimit)
	assert.False(t, cfg.Trace)
	assert.False(t, cfg.Debug)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
base_url: http://api.internal:9090/api
transcript: /tmp/run.log
timeout: 3s
rate_limit: 5
await_timeout: 30s
debug: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:9090/api", cfg.BaseURL)
	assert.Equal(t, "/tmp/run.log", cfg.Transcript)
	assert.Equal(t, time.Second*3, cfg.Timeout)
	assert.Equal(t, float64(5), cfg.RateLimit)
	assert.Equal(t, time.Second*30, cfg.AwaitTimeout)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Trace)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "base_url: http://from-file/api\ntimeout: 3s\n")
	t.Setenv("APITEST_BASE_URL", "https://from-env/api")
	t.Setenv("APITEST_TRACE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env/api", cfg.BaseURL)
	assert.Equal(t, time.Second*3, cfg.Timeout)
	assert.True(t, cfg.Trace)
}

func TestMissingExplicitFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read config file")
}

func TestInvalidValues(t *testing.T) {
	for _, p := range []struct {
		name    string
		content string
		message string
	}{
		{"relative url", "base_url: localhost:8080/api\n", "invalid base_url"},
		{"unsupported scheme", "base_url: ftp://host/api\n", "invalid base_url"},
		{"zero timeout", "timeout: 0s\n", "timeout must be positive"},
		{"negative await", "await_timeout: -1s\n", "await_timeout must not be negative"},
		{"negative rate", "rate_limit: -2\n", "rate_limit must not be negative"},
		{"malformed duration", "timeout: soon\n", "invalid configuration"},
	} {
		t.Run(p.name, func(t *testing.T) {
			_, err := Load(writeFile(t, p.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), p.message)
		})
	}
}
