package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultPort     = 8080
	DefaultTimeout  = 10 * time.Second
	StoreSQLite     = "sqlite"
	StoreMemory     = "memory"
	PromptEditor    = "editor"
	PromptStdin     = "stdin"
	defaultLogLevel = "info"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		AnyDoor: AnyDoorConfig{
			Port: DefaultPort,
		},
		Cache: CacheConfig{
			Store: StoreSQLite,
		},
		Dispatch: DispatchConfig{
			Timeout: DefaultTimeout.String(),
		},
		Prompt: PromptConfig{
			Mode: PromptEditor,
		},
		Logging: LoggingConfig{
			Level:        defaultLogLevel,
			ConsoleStyle: "pretty",
		},
	}
}

// DispatchTimeout returns the parsed dispatch timeout, falling back to the
// default for empty or malformed values.
func (c Config) DispatchTimeout() time.Duration {
	if c.Dispatch.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Dispatch.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// HookEntries returns the configured hook commands keyed by event name.
func (h HooksConfig) HookEntries() map[string][]HookEntry {
	return map[string][]HookEntry{
		"invocation_start":  h.InvocationStart,
		"prompt_dismissed":  h.PromptDismissed,
		"template_saved":    h.TemplateSaved,
		"invocation_sent":   h.InvocationSent,
		"invocation_failed": h.InvocationFailed,
	}
}
