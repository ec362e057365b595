package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) todoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "todo",
		Short: "List todos from the configured sources",
		Long: `List the todos the editor offers for slot descriptions, in priority order.

Sources are set in the [todo] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.planState()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			todos := state.Todos()
			if len(todos) == 0 {
				fmt.Fprintln(out, "No todos found.")
				return nil
			}
			for i, t := range todos {
				fmt.Fprintf(out, "%3d  (%g) %s\n", i+1, t.Priority, t.Description)
			}
			return nil
		},
	}
}
