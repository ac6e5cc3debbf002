package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/soyeahso/anydoor/internal/settings"
	"github.com/soyeahso/anydoor/internal/template"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and edit cached argument templates",
	}

	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCacheGetCmd())
	cmd.AddCommand(newCachePutCmd())
	cmd.AddCommand(newCacheRmCmd())
	cmd.AddCommand(newCacheResetCmd())

	return cmd
}

// withTemplates opens the configured cache for the duration of fn.
func withTemplates(fn func(settings.Templates) error) error {
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	state, err := settings.Open(cfg, paths, log)
	if err != nil {
		return err
	}
	defer state.Close()

	tm := state.Templates()
	if tm == nil {
		return fmt.Errorf("cache store %q cannot be administered", cfg.Cache.Store)
	}
	return fn(tm)
}

func newCacheListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached templates, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTemplates(func(tm settings.Templates) error {
				list, err := tm.List()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(list)
				}
				if len(list) == 0 {
					fmt.Fprintln(out, "No cached templates.")
					return nil
				}
				for _, t := range list {
					fmt.Fprintf(out, "%s  %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04"), t.Key)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print templates as JSON")
	return cmd
}

func newCacheGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the template cached under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTemplates(func(tm settings.Templates) error {
				t, err := tm.Lookup(args[0])
				if err != nil {
					return err
				}
				if t == nil {
					return fmt.Errorf("no template cached for %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.Content)
				return nil
			})
		},
	}
}

func newCachePutCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "put <key> <json|->",
		Short: "Store a template under a key (- reads it from stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := args[1]
			if content == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				content = strings.TrimRight(string(data), "\r\n")
			}
			if err := template.Validate(content); err != nil && !force {
				return fmt.Errorf("%w (use --force to store it anyway)", err)
			}

			return withTemplates(func(tm settings.Templates) error {
				if err := tm.Save(args[0], content); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "store content that is not valid JSON")
	return cmd
}

func newCacheRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove the template cached under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTemplates(func(tm settings.Templates) error {
				removed, err := tm.Delete(args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no template cached for %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newCacheResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every cached template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTemplates(func(tm settings.Templates) error {
				n, err := tm.Reset()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d template(s)\n", n)
				return nil
			})
		},
	}
}
