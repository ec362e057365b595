package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/dateutil"
	"github.com/javiermolinar/daybox/internal/store"
)

func (a *App) exportCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export days to a JSON document",
		Long: `Write days and templates to a JSON document. An existing document is
merged: days and templates with the same date or name are replaced.

Without --from and --to every stored day is exported.

Example:
  daybox export ~/backup/days.json
  daybox export week.json --from monday --to sunday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			rangeFrom, rangeTo := firstDay, lastDay
			if from != "" || to != "" {
				r, err := dateutil.NewDateRange(from, to, a.now())
				if err != nil {
					return err
				}
				rangeFrom, rangeTo = r.From, r.To
			}

			count, err := store.Export(context.Background(), a.repo, rangeFrom, rangeTo, path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", count, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day to export (default: today when --to is set)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to export (default: --from)")
	return cmd
}
