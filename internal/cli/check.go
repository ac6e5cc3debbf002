package cli

import (
	"errors"
	"fmt"

	"github.com/soyeahso/anydoor/internal/analyzer"
	"github.com/soyeahso/anydoor/internal/domain"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file:line:col>",
		Short: "Report whether any door is available at a source position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := locate(cmd, args[0])
			if errors.Is(err, analyzer.ErrNotApplicable) {
				fmt.Fprintln(cmd.OutOrStdout(), "unavailable")
				return ErrReported
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "available")
			fmt.Fprintf(out, "Target:  %s\n", site)
			fmt.Fprintf(out, "Key:     %s\n", site.Key())
			if site.HasParameters() {
				fmt.Fprintf(out, "Params:  %d\n", len(site.ParameterTypeNames))
			} else {
				fmt.Fprintln(out, "Params:  none (sent without prompting)")
			}
			return nil
		},
	}
}

func newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <file:line:col>",
		Short: "Print the template cache key of the function at a source position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := locate(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), site.Key())
			return nil
		},
	}
}

func locate(cmd *cobra.Command, raw string) (*domain.CallSite, error) {
	pos, err := analyzer.ParsePosition(raw)
	if err != nil {
		return nil, err
	}
	return analyzer.New(log).Locate(cmd.Context(), pos)
}
