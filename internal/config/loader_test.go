package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/flash-ui/internal/config"
)

// writeFile is a test helper that creates a temporary file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

// ---------------------------------------------------------------------------
// LoadFile tests
// ---------------------------------------------------------------------------

func TestLoadFileBasicKeyValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "MODEL=gemini-pro\nMAX_RETRIES=5\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-pro", m["MODEL"])
	assert.Equal(t, "5", m["MAX_RETRIES"])
}

func TestLoadFileSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "# comment\n\nMODEL=m\n\n# another\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, m, 1)
	assert.Equal(t, "m", m["MODEL"])
}

func TestLoadFileTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "  MODEL  =  m1  \n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "m1", m["MODEL"])
}

func TestLoadFileSkipsUnknownKeysAndLinesWithoutEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "MODEL=m\nUNKNOWN=1\nno equals here\nVERBOSE=true\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, m, 2)
	assert.Empty(t, m["UNKNOWN"])
}

func TestLoadFileValueWithEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "API_BASE_URL=http://proxy:8080/v1?x=y\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://proxy:8080/v1?x=y", m["API_BASE_URL"])
}

func TestLoadFileReturnsErrorForMissingFile(t *testing.T) {
	_, err := config.LoadFile("/nonexistent/path/config")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileShellEnvSyntax(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", strings.Join([]string{
		`export API_KEY="secret key"`,
		`MODEL='gemini-x'`,
		`STATE_DIR="unterminated`,
		`EXPORT_DIR=""`,
		"VERBOSE=true\r",
		`API_BASE_URL=http://host`,
	}, "\n"))

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "secret key", m["API_KEY"])
	assert.Equal(t, "gemini-x", m["MODEL"])
	assert.Equal(t, `"unterminated`, m["STATE_DIR"])
	assert.Contains(t, m, "EXPORT_DIR")
	assert.Empty(t, m["EXPORT_DIR"])
	assert.Equal(t, "true", m["VERBOSE"])
	assert.Equal(t, "http://host", m["API_BASE_URL"], "last line without newline is read")
}

// ---------------------------------------------------------------------------
// EnvOverrides tests
// ---------------------------------------------------------------------------

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"API_KEY":         "plain",
		"GEMINI_API_KEY":  "gemini",
		"FLASH_UI_MODEL":  "env-model",
		"FLASH_UI_BOGUS":  "ignored",
		"UNRELATED_VALUE": "x",
	}
	got := config.EnvOverrides(func(k string) string { return env[k] })

	assert.Equal(t, map[string]string{
		"API_KEY": "gemini",
		"MODEL":   "env-model",
	}, got)
}

func TestEnvOverridesPrefixedKeyWins(t *testing.T) {
	env := map[string]string{
		"GEMINI_API_KEY":   "gemini",
		"FLASH_UI_API_KEY": "prefixed",
	}
	got := config.EnvOverrides(func(k string) string { return env[k] })

	assert.Equal(t, "prefixed", got["API_KEY"])
}

// ---------------------------------------------------------------------------
// Precedence tests
// ---------------------------------------------------------------------------

func TestLoadWithPrecedenceDefaultsOnly(t *testing.T) {
	cfg, err := config.LoadWithPrecedence("", "", "", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadWithPrecedenceMissingOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadWithPrecedence(filepath.Join(dir, "nope"), filepath.Join(dir, "nope2"), "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadWithPrecedenceExplicitMustExist(t *testing.T) {
	_, err := config.LoadWithPrecedence("", "", "/nonexistent/explicit", nil, nil)
	assert.ErrorContains(t, err, "explicit config")
}

func TestLoadWithPrecedenceChain(t *testing.T) {
	dir := t.TempDir()
	globalPath := writeFile(t, dir, "global", "MODEL=global\nMAX_RETRIES=9\nSTATE_DIR=/g\nEXPORT_DIR=/g-exports\n")
	projectPath := writeFile(t, dir, "project", "MODEL=project\nMAX_RETRIES=7\nSTATE_DIR=/p\n")
	explicitPath := writeFile(t, dir, "explicit", "MODEL=explicit\nMAX_RETRIES=5\n")
	env := map[string]string{"MODEL": "env", "API_KEY": "k"}
	cli := map[string]string{"MODEL": "cli", "VERBOSE": "true"}

	cfg, err := config.LoadWithPrecedence(globalPath, projectPath, explicitPath, env, cli)
	require.NoError(t, err)

	assert.Equal(t, "cli", cfg.Model)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "/p", cfg.StateDir)
	assert.Equal(t, "/g-exports", cfg.ExportDir)
	assert.True(t, cfg.Verbose)
}

// ---------------------------------------------------------------------------
// ApplyMapToConfig tests
// ---------------------------------------------------------------------------

func TestApplyMapToConfigNumbers(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{
		"TEMPERATURE":           "0.7",
		"VARIATION_TEMPERATURE": "1.5",
		"MAX_RETRIES":           "0",
		"BASE_DELAY_MS":         "250",
	})

	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, 0.7, *cfg.Temperature)
	assert.Equal(t, 1.5, cfg.VariationTemperature)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 250, cfg.BaseDelayMS)

	config.ApplyMapToConfig(cfg, map[string]string{"TEMPERATURE": ""})
	assert.Nil(t, cfg.Temperature)
}

func TestApplyMapToConfigIgnoresInvalidNumbers(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{
		"TEMPERATURE":   "warm",
		"MAX_RETRIES":   "-1",
		"BASE_DELAY_MS": "0",
	})

	assert.Nil(t, cfg.Temperature)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2000, cfg.BaseDelayMS)
}

func TestApplyMapToConfigBooleans(t *testing.T) {
	for _, v := range []string{"true", "1", "YES"} {
		cfg := config.NewDefaultConfig()
		config.ApplyMapToConfig(cfg, map[string]string{"VERBOSE": v})
		assert.True(t, cfg.Verbose, v)
	}
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{"VERBOSE": "nope"})
	assert.False(t, cfg.Verbose)
}
