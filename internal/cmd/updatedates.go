package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/harrison/finx/internal/checker"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewUpdateDatesCommand creates the update-dates subcommand
func NewUpdateDatesCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-dates",
		Short: "Write inferred account activity dates back to the private configuration",
		Long: `Derive each account's activity window from the dates embedded in its
matched filenames and write start_date and end_date back to the private
configuration file.

The write is performed under a file lock; other finx invocations wait
for it to complete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.newLogger(cmd.ErrOrStderr())
			c, err := flags.newChecker(log)
			if err != nil {
				return err
			}
			return runUpdateDates(c, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	return cmd
}

func runUpdateDates(c *checker.Checker, output io.Writer) error {
	if _, err := c.UpdateDates(); err != nil {
		return err
	}

	dates := c.AccountDates()
	if len(dates) == 0 {
		fmt.Fprintln(output, "No account activity found.")
		return nil
	}

	ids := make([]string, 0, len(dates))
	for id := range dates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Account", "First Seen", "Last Seen", "Files"})
	for _, id := range ids {
		info := dates[id]
		t.AppendRow(table.Row{id, info.StartDate, info.EndDate, len(info.Files)})
	}
	t.Render()
	return nil
}
