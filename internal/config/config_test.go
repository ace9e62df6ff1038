package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/cyclecal/internal/services"
)

func TestLoadDefaults(t *testing.T) {
	previousDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(previousDir) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/cyclecal.db", cfg.DBPath)
	assert.Empty(t, cfg.SecretKey)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, services.ScopeMonth, cfg.ClassifierScope)
	assert.Equal(t, services.DefaultHorizonCycles, cfg.HorizonCycles)
}

func TestLoadFileAndEnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyclecal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
db:
  path: /var/lib/cyclecal/app.db
calendar:
  week_start: monday
  classifier_scope: window
prediction:
  horizon: 6
`), 0o600))
	t.Setenv("CYCLECAL_SERVER_PORT", "7070")
	t.Setenv("CYCLECAL_AUTH_SECRET_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/var/lib/cyclecal/app.db", cfg.DBPath)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.Equal(t, services.ScopeWindow, cfg.ClassifierScope)
	assert.Equal(t, 6, cfg.HorizonCycles)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"scope":   "calendar:\n  classifier_scope: sideways\n",
		"week":    "calendar:\n  week_start: thursday\n",
		"horizon": "prediction:\n  horizon: 0\n",
		"tz":      "tz: Mars/Olympus\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		_, err := Load(path)
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
