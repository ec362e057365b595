package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/editor"
	"github.com/javiermolinar/daybox/internal/slot"
)

func (a *App) templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable day layouts",
		Long: `Save a day's slots as a named template and apply it to other days.

Example:
  daybox template save workday
  daybox template apply workday --date tomorrow
  daybox template list`,
	}

	cmd.AddCommand(a.templateListCmd())
	cmd.AddCommand(a.templateSaveCmd())
	cmd.AddCommand(a.templateApplyCmd())
	return cmd
}

func (a *App) templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			templates, err := a.repo.ListTemplates(context.Background())
			if err != nil {
				return fmt.Errorf("listing templates: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates saved.")
				return nil
			}
			for _, t := range templates {
				fmt.Fprintf(out, "  %s  %d slots, %s from %s\n",
					t.Name, len(t.Slots), slot.FormatDuration(t.TotalTime), slot.MinutesToTime(t.Start))
			}
			return nil
		},
	}
}

func (a *App) templateSaveCmd() *cobra.Command {
	var days dayFlags

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save a day as a template",
		Long: `Save a day's budget and slots under a name. An existing template with
the same name is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := a.day(ctx, days)
			if err != nil {
				return err
			}
			t, err := slot.TemplateFromDay(args[0], d)
			if err != nil {
				return err
			}
			if err := a.repo.SaveTemplate(ctx, t); err != nil {
				return fmt.Errorf("saving template %q: %w", t.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q from %s (%d slots)\n", t.Name, d.Date, len(t.Slots))
			return nil
		},
	}

	days.register(cmd)
	return cmd
}

func (a *App) templateApplyCmd() *cobra.Command {
	var days dayFlags

	cmd := &cobra.Command{
		Use:   "apply [name]",
		Short: "Replace a day's slots with a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.ensureRepo(); err != nil {
				return err
			}
			t, err := a.repo.GetTemplate(context.Background(), name)
			if err != nil {
				return fmt.Errorf("loading template %q: %w", name, err)
			}
			if t == nil {
				return fmt.Errorf("template %q not found", name)
			}

			d, report, err := a.editDay(days, func(d *slot.Day) (calibrate.Report, error) {
				return editor.ApplyTemplate(d, *t)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied template %q to %s\n", name, d.Date)
			a.printEdited(cmd, d, report)
			return nil
		},
	}

	days.register(cmd)
	return cmd
}
