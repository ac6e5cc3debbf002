package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/soyeahso/anydoor/internal/config"
	"github.com/soyeahso/anydoor/internal/logging"
	"github.com/spf13/cobra"
)

// ErrReported is returned when a command already told the user what went
// wrong; the caller should only set the exit status.
var ErrReported = errors.New("failure already reported")

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths     config.Paths
	cfg       config.Config
	log       *logging.Logger
	logCloser io.Closer
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anydoor",
		Short: "anydoor: invoke a Go function through the any_door server",
		Long: "anydoor turns the function under the cursor into an editable JSON argument payload, " +
			"remembers it per signature, and posts it to a locally running any_door server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			cfg, err = config.Load(paths.Config)
			if err != nil {
				return err
			}
			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			if level == "" {
				level = "info"
			}
			log, logCloser, err = logging.Open(level, cfg.Logging.ConsoleStyle, cfg.Logging.File)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.anydoor/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newKeyCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// Execute runs the root command. An interrupt cancels the command context,
// which closes any open prompt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runRoot(ctx, newRootCmd())
}

// runRoot runs cmd and releases the log file whether or not it failed.
func runRoot(ctx context.Context, cmd *cobra.Command) error {
	logCloser = nil
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}()
	return cmd.ExecuteContext(ctx)
}

