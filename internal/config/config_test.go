package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minitut.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
document: deck.html
toc_style: hamburger
toc_list: ul
fetch_timeout: 5s
download:
  - a.md
  - b.html
`), 0o644))

	t.Setenv("MINITUT_TOC_LIST", "none")
	t.Setenv("MINITUT_PORT", "9000")
	t.Setenv("MINITUT_NO_TOUCH_NAV", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deck.html", cfg.Document)
	assert.Equal(t, TOCHamburger, cfg.TOCStyle)
	assert.Equal(t, ListNone, cfg.TOCList)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.NoTouchNav)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout.Std())
	assert.Equal(t, []string{"a.md", "b.html"}, cfg.Download)
	assert.Equal(t, 3, cfg.FetchRetries, "defaults survive")
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvListIsCommaSeparated(t *testing.T) {
	t.Setenv("MINITUT_DOWNLOAD", "one.md,two.md")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"one.md", "two.md"}, cfg.Download)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	cfg := Default()
	cfg.Document = "slides.html"
	cfg.FetchTimeout = Duration(90 * time.Second)
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetch_timeout: 1m30s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Document = "deck.html"
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing document", func(c *Config) { c.Document = "" }},
		{"toc style", func(c *Config) { c.TOCStyle = "drawer" }},
		{"toc list", func(c *Config) { c.TOCList = "dl" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"retries", func(c *Config) { c.FetchRetries = -1 }},
		{"concurrency", func(c *Config) { c.MaxConcurrent = -2 }},
		{"timeout", func(c *Config) { c.FetchTimeout = Duration(-time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLogger(t *testing.T) {
	for _, format := range []LogFormat{LogConsole, LogJSON} {
		c := Default()
		c.LogFormat = format
		c.LogLevel = "debug"
		log, err := c.Logger()
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(-1))
	}

	c := Default()
	c.LogLevel = "bogus"
	_, err := c.Logger()
	assert.Error(t, err)
}
