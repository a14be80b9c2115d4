package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves the test into an empty directory with its own home so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origDir))
	})
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	return tmpDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultSchemaURL, cfg.Schema.BaseURL)
	assert.Equal(t, "10s", cfg.Schema.Timeout)
	assert.True(t, cfg.Schema.CacheFailures)
	assert.Equal(t, 4, cfg.Schema.Concurrency)
	assert.Equal(t, "xml", cfg.Output.Format)
	assert.Empty(t, cfg.Output.Dir)
	assert.Equal(t, 10*time.Second, cfg.SchemaTimeout())
}

func TestSchemaTimeout(t *testing.T) {
	cfg := Default()

	cfg.Schema.Timeout = "2500ms"
	assert.Equal(t, 2500*time.Millisecond, cfg.SchemaTimeout())

	cfg.Schema.Timeout = "soon"
	assert.Equal(t, 10*time.Second, cfg.SchemaTimeout())

	cfg.Schema.Timeout = "-1s"
	assert.Equal(t, 10*time.Second, cfg.SchemaTimeout())
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		isolate(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("loads config from current directory", func(t *testing.T) {
		dir := isolate(t)
		configContent := `
format: ndjson
quiet: true
schema:
  timeout: 3s
  concurrency: 1
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".mdmdefaults.yaml"), []byte(configContent), 0644))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ndjson", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.Equal(t, 3*time.Second, cfg.SchemaTimeout())
		assert.Equal(t, 1, cfg.Schema.Concurrency)
		// untouched keys keep their defaults
		assert.Equal(t, DefaultSchemaURL, cfg.Schema.BaseURL)
		assert.True(t, cfg.Schema.CacheFailures)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mdmdefaults.yaml"), []byte("schema: [unclosed"), 0644))

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644))

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		configContent := `
format: ndjson
quiet: false
verbose: true
schema:
  base_url: http://localhost:8080/profiles/
  timeout: 30s
  cache_failures: false
  concurrency: 8
output:
  format: binary
  dir: /tmp/out
`
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.False(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "http://localhost:8080/profiles/", cfg.Schema.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.SchemaTimeout())
		assert.False(t, cfg.Schema.CacheFailures)
		assert.Equal(t, 8, cfg.Schema.Concurrency)
		assert.Equal(t, "binary", cfg.Output.Format)
		assert.Equal(t, "/tmp/out", cfg.Output.Dir)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("finds .mdmdefaults.yaml in current directory", func(t *testing.T) {
		dir := isolate(t)
		configPath := filepath.Join(dir, ".mdmdefaults.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: text"), 0644))

		// Resolve symlinks for comparison (macOS /var -> /private/var)
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(findConfigFile())
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("prefers dotfile over plain name", func(t *testing.T) {
		dir := isolate(t)
		dotPath := filepath.Join(dir, ".mdmdefaults.yml")
		require.NoError(t, os.WriteFile(dotPath, []byte("format: text"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mdmdefaults.yaml"), []byte("format: ndjson"), 0644))

		expectedPath, err := filepath.EvalSymlinks(dotPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(findConfigFile())
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("falls back to the user config dir", func(t *testing.T) {
		dir := isolate(t)
		xdg := filepath.Join(dir, "xdg")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "mdmdefaults"), 0755))
		configPath := filepath.Join(xdg, "mdmdefaults", "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("quiet: true"), 0644))

		if configDir, err := os.UserConfigDir(); err != nil || configDir != xdg {
			t.Skip("platform does not honour XDG_CONFIG_HOME")
		}
		assert.Equal(t, configPath, findConfigFile())
		assert.Equal(t, configPath, ConfigFile())
	})

	t.Run("returns empty string when no config found", func(t *testing.T) {
		isolate(t)
		assert.Empty(t, findConfigFile())
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("format overrides from env", func(t *testing.T) {
		isolate(t)
		t.Setenv("MDMDEFAULTS_FORMAT", "ndjson")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ndjson", cfg.Format)
	})

	t.Run("boolean flags accept 1 and true", func(t *testing.T) {
		isolate(t)
		t.Setenv("MDMDEFAULTS_QUIET", "1")
		t.Setenv("MDMDEFAULTS_VERBOSE", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
	})

	t.Run("false values leave flags alone", func(t *testing.T) {
		isolate(t)
		t.Setenv("MDMDEFAULTS_QUIET", "no")
		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Quiet)
	})

	t.Run("schema source overrides from env win over file", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".mdmdefaults.yaml"),
			[]byte("schema:\n  base_url: http://file/\n  timeout: 1s\n"), 0644))
		t.Setenv("MDMDEFAULTS_SCHEMA_URL", "http://env/")
		t.Setenv("MDMDEFAULTS_SCHEMA_TIMEOUT", "5s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://env/", cfg.Schema.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.SchemaTimeout())
	})
}
