package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/soyeahso/anydoor/internal/analyzer"
	"github.com/soyeahso/anydoor/internal/config"
	"github.com/soyeahso/anydoor/internal/dispatch"
	"github.com/soyeahso/anydoor/internal/hooks"
	"github.com/soyeahso/anydoor/internal/intention"
	"github.com/soyeahso/anydoor/internal/notify"
	"github.com/soyeahso/anydoor/internal/prompt"
	"github.com/soyeahso/anydoor/internal/settings"
	"github.com/spf13/cobra"
)

// drainGrace is added to the dispatch timeout when waiting for in-flight
// requests before exit.
const drainGrace = 2 * time.Second

func newRunCmd() *cobra.Command {
	var (
		content     string
		contentFile string
		useStdin    bool
		port        int
	)

	cmd := &cobra.Command{
		Use:   "run <file:line:col>",
		Short: "Open any door on the function at a source position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := analyzer.ParsePosition(args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				cfg.AnyDoor.Port = port
			}
			if issues := config.Validate(&cfg); len(issues) > 0 {
				return fmt.Errorf("invalid config: %s", issues[0])
			}

			p, err := buildPrompter(cmd, content, contentFile, useStdin)
			if err != nil {
				return err
			}

			hm := hooks.NewManager(log)
			hm.RegisterCommands(cfg.Hooks)

			d := dispatch.New(log,
				dispatch.WithTimeout(cfg.DispatchTimeout()),
				dispatch.WithHooks(hm),
			)

			var failures atomic.Int32
			n := notify.Multi(
				notify.NewWriterNotifier(cmd.ErrOrStderr()),
				notify.NewLogNotifier(log),
				notify.Func(func(string) { failures.Add(1) }),
			)

			var state *settings.State
			provider := func() (*settings.State, error) {
				if err := paths.EnsureDirs(); err != nil {
					return nil, err
				}
				s, err := settings.Open(cfg, paths, log)
				if err != nil {
					return nil, err
				}
				state = s
				return s, nil
			}
			defer func() {
				if state != nil {
					_ = state.Close()
				}
			}()

			in := intention.New(provider, p, d, n, log,
				intention.WithLocator(analyzer.New(log)),
				intention.WithHooks(hm),
			)

			outcome, err := in.InvokeAt(cmd.Context(), pos)
			if errors.Is(err, intention.ErrNotApplicable) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not available at %s\n", in.Text(), pos)
				return ErrReported
			}
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.DispatchTimeout()+drainGrace)
			defer cancel()
			if err := d.Drain(ctx); err != nil {
				log.Warn().Err(err).Msg("gave up waiting for the any_door server")
			}

			fmt.Fprintln(cmd.OutOrStdout(), outcome)
			if failures.Load() > 0 {
				return ErrReported
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "confirm this payload without prompting")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "confirm the payload read from a file (- for stdin)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read the edited payload from stdin instead of an editor")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "any_door server port (overrides anyDoor.port)")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file", "stdin")

	return cmd
}

// buildPrompter picks the prompt from the flags, falling back to prompt.mode.
func buildPrompter(cmd *cobra.Command, content, contentFile string, useStdin bool) (prompt.Prompter, error) {
	switch {
	case cmd.Flags().Changed("content"):
		return prompt.StaticPrompter{Text: content}, nil
	case contentFile != "":
		data, err := readContentFile(cmd.InOrStdin(), contentFile)
		if err != nil {
			return nil, err
		}
		return prompt.StaticPrompter{Text: data}, nil
	case useStdin || cfg.Prompt.Mode == config.PromptStdin:
		return &prompt.ReaderPrompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}, nil
	default:
		return prompt.NewEditorPrompter(cfg.Prompt.Editor, log), nil
	}
}

func readContentFile(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
