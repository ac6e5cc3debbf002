package config

import (
	"fmt"
	"slices"
	"time"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.AnyDoor.Port < 1 || cfg.AnyDoor.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "anyDoor.port",
			Message: fmt.Sprintf("port must be 1-65535, got %d", cfg.AnyDoor.Port),
		})
	}

	validStores := []string{StoreSQLite, StoreMemory}
	if cfg.Cache.Store != "" && !slices.Contains(validStores, cfg.Cache.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "cache.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Cache.Store),
		})
	}

	if cfg.Dispatch.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Dispatch.Timeout); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "dispatch.timeout",
				Message: fmt.Sprintf("invalid duration %q", cfg.Dispatch.Timeout),
			})
		} else if d <= 0 {
			issues = append(issues, ValidationIssue{
				Path:    "dispatch.timeout",
				Message: "must be positive",
			})
		}
	}

	validModes := []string{PromptEditor, PromptStdin}
	if cfg.Prompt.Mode != "" && !slices.Contains(validModes, cfg.Prompt.Mode) {
		issues = append(issues, ValidationIssue{
			Path:    "prompt.mode",
			Message: fmt.Sprintf("must be one of %v, got %q", validModes, cfg.Prompt.Mode),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "compact", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	hookLists := []struct {
		path    string
		entries []HookEntry
	}{
		{"hooks.invocationStart", cfg.Hooks.InvocationStart},
		{"hooks.promptDismissed", cfg.Hooks.PromptDismissed},
		{"hooks.templateSaved", cfg.Hooks.TemplateSaved},
		{"hooks.invocationSent", cfg.Hooks.InvocationSent},
		{"hooks.invocationFailed", cfg.Hooks.InvocationFailed},
	}
	for _, hl := range hookLists {
		for i, e := range hl.entries {
			if e.Command == "" {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s[%d].command", hl.path, i),
					Message: "command is required",
				})
			}
			if e.Timeout < 0 {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s[%d].timeout", hl.path, i),
					Message: fmt.Sprintf("timeout must not be negative, got %d", e.Timeout),
				})
			}
		}
	}

	return issues
}
