package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/finx/internal/checker"
	"github.com/spf13/cobra"
)

// NewYearsCommand creates the years subcommand
func NewYearsCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the tax years present in the document tree",
		Long: `Scan the document tree for calendar year tokens in PDF filenames and
list the years that have at least one document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.newLogger(cmd.ErrOrStderr())
			c, err := flags.newChecker(log)
			if err != nil {
				return err
			}
			return runYears(c, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	return cmd
}

func runYears(c *checker.Checker, output io.Writer) error {
	years := c.ListAvailableYears()
	if len(years) == 0 {
		fmt.Fprintf(output, "No tax years found under %s\n", c.BasePath())
		return nil
	}
	for _, year := range years {
		fmt.Fprintln(output, year)
	}
	return nil
}
