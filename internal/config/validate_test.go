package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidDefaults(t *testing.T) {
	cfg := Defaults()
	issues := Validate(&cfg)
	assert.Empty(t, issues)
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Defaults()

	for _, port := range []int{0, -1, 70000} {
		cfg.AnyDoor.Port = port
		issues := Validate(&cfg)
		require.Len(t, issues, 1, "port %d", port)
		assert.Equal(t, "anyDoor.port", issues[0].Path)
	}
}

func TestValidate_ValidPort(t *testing.T) {
	cfg := Defaults()
	for _, port := range []int{1, 8080, 65535} {
		cfg.AnyDoor.Port = port
		assert.Empty(t, Validate(&cfg))
	}
}

func TestValidate_InvalidCacheStore(t *testing.T) {
	cfg := Defaults()
	cfg.Cache.Store = "redis"
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "cache.store", issues[0].Path)
}

func TestValidate_DispatchTimeout(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"10s", false},
		{"1m30s", false},
		{"", false},
		{"ten", true},
		{"-5s", true},
		{"0s", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := Defaults()
			cfg.Dispatch.Timeout = tt.value
			issues := Validate(&cfg)
			if tt.wantErr {
				require.Len(t, issues, 1)
				assert.Equal(t, "dispatch.timeout", issues[0].Path)
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestValidate_InvalidPromptMode(t *testing.T) {
	cfg := Defaults()
	cfg.Prompt.Mode = "gui"
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "prompt.mode", issues[0].Path)
}

func TestValidate_InvalidLogging(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"
	cfg.Logging.ConsoleStyle = "fancy"
	issues := Validate(&cfg)
	require.Len(t, issues, 2)

	var paths []string
	for _, i := range issues {
		paths = append(paths, i.Path)
	}
	assert.ElementsMatch(t, []string{"logging.level", "logging.consoleStyle"}, paths)
}

func TestValidate_Hooks(t *testing.T) {
	cfg := Defaults()
	cfg.Hooks.InvocationFailed = []HookEntry{
		{Command: "notify-send anydoor"},
		{Command: "", Timeout: -1},
	}
	issues := Validate(&cfg)
	require.Len(t, issues, 2)
	assert.Equal(t, "hooks.invocationFailed[1].command", issues[0].Path)
	assert.Equal(t, "hooks.invocationFailed[1].timeout", issues[1].Path)
}

func TestValidationIssueString(t *testing.T) {
	i := ValidationIssue{Path: "anyDoor.port", Message: "bad"}
	assert.Equal(t, "anyDoor.port: bad", i.String())
}
