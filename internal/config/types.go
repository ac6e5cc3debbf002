package config

// Config is the root configuration for anydoor.
type Config struct {
	AnyDoor  AnyDoorConfig  `yaml:"anyDoor,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Dispatch DispatchConfig `yaml:"dispatch,omitempty"`
	Prompt   PromptConfig   `yaml:"prompt,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Hooks    HooksConfig    `yaml:"hooks,omitempty"`
}

// AnyDoorConfig locates the any_door runtime server.
type AnyDoorConfig struct {
	Port int `yaml:"port,omitempty"`
}

// CacheConfig selects where argument templates are kept.
type CacheConfig struct {
	Store string `yaml:"store,omitempty"` // "sqlite" | "memory"
	Path  string `yaml:"path,omitempty"`  // sqlite file; defaults to <data>/templates.db
}

// DispatchConfig tunes the HTTP client used to reach the server.
type DispatchConfig struct {
	Timeout string `yaml:"timeout,omitempty"` // Go duration, e.g. "10s"
}

// PromptConfig controls how the argument template is edited.
type PromptConfig struct {
	Mode   string `yaml:"mode,omitempty"`   // "editor" | "stdin"
	Editor string `yaml:"editor,omitempty"` // command line; falls back to $VISUAL, $EDITOR, vi
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File         string `yaml:"file,omitempty"`
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "compact" | "json"
}

// HooksConfig defines shell commands run on invocation lifecycle events.
type HooksConfig struct {
	InvocationStart  []HookEntry `yaml:"invocationStart,omitempty"`
	PromptDismissed  []HookEntry `yaml:"promptDismissed,omitempty"`
	TemplateSaved    []HookEntry `yaml:"templateSaved,omitempty"`
	InvocationSent   []HookEntry `yaml:"invocationSent,omitempty"`
	InvocationFailed []HookEntry `yaml:"invocationFailed,omitempty"`
}

// HookEntry defines a single hook action.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // milliseconds
}
