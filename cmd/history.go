package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/101Room/berezin-dicts/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var asJSON bool
	var last int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded upload results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := app.history.List(cmd.Context())
			if err != nil {
				return err
			}
			if last > 0 && len(results) > last {
				results = results[len(results)-last:]
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(results)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Render(results))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().IntVar(&last, "last", 0, "Show only the N most recent entries")

	return cmd
}
