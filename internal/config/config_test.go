package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 8080, cfg.AnyDoor.Port)
	assert.Equal(t, "sqlite", cfg.Cache.Store)
	assert.Equal(t, "10s", cfg.Dispatch.Timeout)
	assert.Equal(t, "editor", cfg.Prompt.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.ConsoleStyle)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.AnyDoor.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
anyDoor:
  port: 9999
cache:
  store: memory
dispatch:
  timeout: 3s
prompt:
  mode: stdin
  editor: code --wait
logging:
  level: debug
  consoleStyle: json
hooks:
  invocationFailed:
    - command: notify-send "any door failed"
      timeout: 500
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.AnyDoor.Port)
	assert.Equal(t, "memory", cfg.Cache.Store)
	assert.Equal(t, 3*time.Second, cfg.DispatchTimeout())
	assert.Equal(t, "stdin", cfg.Prompt.Mode)
	assert.Equal(t, "code --wait", cfg.Prompt.Editor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.ConsoleStyle)
	require.Len(t, cfg.Hooks.InvocationFailed, 1)
	assert.Equal(t, 500, cfg.Hooks.InvocationFailed[0].Timeout)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anyDoor:\n  port: 7001\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.AnyDoor.Port)
	assert.Equal(t, "sqlite", cfg.Cache.Store)
	assert.Equal(t, DefaultTimeout, cfg.DispatchTimeout())
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{invalid yaml"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ANYDOOR_PORT", "12345")
	t.Setenv("ANYDOOR_LOG_LEVEL", "TRACE")
	t.Setenv("ANYDOOR_CACHE_STORE", "Memory")
	t.Setenv("ANYDOOR_EDITOR", "nano")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 12345, cfg.AnyDoor.Port)
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "memory", cfg.Cache.Store)
	assert.Equal(t, "nano", cfg.Prompt.Editor)
}

func TestLoadExpandsPathFields(t *testing.T) {
	t.Setenv("AD_TEST_DIR", "/srv/ad")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  path: ${AD_TEST_DIR}/t.db\nlogging:\n  file: ${AD_UNSET_VAR}/x.log\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/ad/t.db", cfg.Cache.Path)
	assert.Equal(t, "${AD_UNSET_VAR}/x.log", cfg.Logging.File)
}

func TestDispatchTimeoutFallback(t *testing.T) {
	cfg := Defaults()
	cfg.Dispatch.Timeout = "garbage"
	assert.Equal(t, DefaultTimeout, cfg.DispatchTimeout())

	cfg.Dispatch.Timeout = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.DispatchTimeout())
}

func TestHookEntries(t *testing.T) {
	h := HooksConfig{TemplateSaved: []HookEntry{{Command: "true"}}}
	entries := h.HookEntries()
	assert.Len(t, entries, 5)
	assert.Len(t, entries["template_saved"], 1)
	assert.Empty(t, entries["invocation_sent"])
}

func TestParseConfigPath(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"anyDoor.port", []string{"anyDoor", "port"}, false},
		{"prompt.editor", []string{"prompt", "editor"}, false},
		{"", nil, true},
		{"a..b", nil, true},
		{"gateway.port", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConfigPath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLoadRawAndSaveRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	raw := map[string]any{
		"anyDoor": map[string]any{
			"port": 9999,
		},
	}

	require.NoError(t, SaveRaw(path, raw))

	loaded, err := LoadRaw(path)
	require.NoError(t, err)

	val, ok := GetValueAtPath(loaded, []string{"anyDoor", "port"})
	assert.True(t, ok)
	assert.Equal(t, 9999, val)
}

func TestLoadRawEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	raw, err := LoadRaw(path)
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}
