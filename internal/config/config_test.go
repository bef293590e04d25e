package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_ORG", "acme")
	t.Setenv("REPORT_TEAM", "platform")
	t.Setenv("REPORT_MONTHS", "2-0")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "acme", cfg.Org)
	assert.Equal(t, "platform", cfg.Team)
	assert.Equal(t, "2-0", cfg.Months)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadFromEnvHTTPTimeout(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_ORG", "acme")
	t.Setenv("HTTP_TIMEOUT", "5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoadFromEnvBadHTTPTimeoutFallsBack(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_ORG", "acme")
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadFromEnvMissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_ORG", "acme")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvMissingOrg(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_ORG", "")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}
