package cli

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/soyeahso/anydoor/internal/config"
	"github.com/soyeahso/anydoor/internal/dispatch"
	"github.com/soyeahso/anydoor/internal/hooks"
	"github.com/soyeahso/anydoor/internal/prompt"
	"github.com/soyeahso/anydoor/internal/settings"
	"github.com/soyeahso/anydoor/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show anydoor status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "anydoor %s (commit %s)\n\n", version.Current(), version.Commit)

			// Show paths
			fmt.Fprintf(out, "Config:   %s\n", paths.Config)
			fmt.Fprintf(out, "Data:     %s\n", paths.Data)
			fmt.Fprintf(out, "Logs:     %s\n", paths.Logs)
			fmt.Fprintln(out)

			// Server
			port := cfg.AnyDoor.Port
			state := "unreachable"
			conn, err := net.DialTimeout("tcp", net.JoinHostPort(dispatch.Host, strconv.Itoa(port)), time.Second)
			if err == nil {
				conn.Close()
				state = "listening"
			}
			fmt.Fprintf(out, "Server:   %s (%s)\n", dispatch.URL(dispatch.Host, port), state)
			fmt.Fprintf(out, "Timeout:  %s\n", cfg.DispatchTimeout())

			// Cache
			switch cfg.Cache.Store {
			case config.StoreMemory:
				fmt.Fprintln(out, "Cache:    store=memory (templates last for one run)")
			default:
				db := paths.TemplatesDB(cfg)
				count := "0"
				if _, err := os.Stat(db); err != nil {
					count = "none yet"
				} else if s, err := settings.Open(cfg, paths, log); err == nil {
					if list, err := s.Templates().List(); err == nil {
						count = strconv.Itoa(len(list))
					}
					s.Close()
				}
				fmt.Fprintf(out, "Cache:    store=sqlite path=%s templates=%s\n", db, count)
			}

			// Prompt
			if cfg.Prompt.Mode == config.PromptStdin {
				fmt.Fprintln(out, "Prompt:   stdin")
			} else {
				fmt.Fprintf(out, "Prompt:   editor=%s\n", prompt.ResolveEditor(cfg.Prompt.Editor))
			}

			// Hooks
			entries := cfg.Hooks.HookEntries()
			for _, event := range hooks.AllEvents {
				if n := len(entries[event]); n > 0 {
					fmt.Fprintf(out, "Hook:     %s (%d)\n", event, n)
				}
			}

			// Validation
			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}
