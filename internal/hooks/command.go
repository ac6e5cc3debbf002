package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/soyeahso/anydoor/internal/config"
)

const defaultCommandTimeout = 5 * time.Second

// CommandHandler returns a Handler that runs command through "sh -c" with the
// JSON-encoded payload on stdin. A timeout of zero uses a five second default.
func CommandHandler(command string, timeout time.Duration) Handler {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return func(ctx context.Context, p Payload) error {
		input, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.WaitDelay = 500 * time.Millisecond
		cmd.Stdin = bytes.NewReader(input)
		cmd.Env = append(cmd.Environ(), "ANYDOOR_EVENT="+p.Event)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("hook command %q: %w: %s", command, err, msg)
			}
			return fmt.Errorf("hook command %q: %w", command, err)
		}
		return nil
	}
}

// RegisterCommands registers a CommandHandler for every configured hook entry.
func (m *Manager) RegisterCommands(cfg config.HooksConfig) {
	for event, entries := range cfg.HookEntries() {
		for i, e := range entries {
			name := fmt.Sprintf("config:%s[%d]", event, i)
			m.On(event, name, CommandHandler(e.Command, time.Duration(e.Timeout)*time.Millisecond))
		}
	}
}
