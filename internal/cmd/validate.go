package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/finx/internal/checker"
	"github.com/spf13/cobra"
)

// NewValidateEntitiesCommand creates the validate-entities subcommand
func NewValidateEntitiesCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-entities",
		Short: "Check that every entity reference in the configuration resolves",
		Long: `Walk the merged configuration and verify that every entity_id refers to
an entity present in the entities file.

Exit code: 0 if all references resolve, 1 otherwise`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.newLogger(cmd.ErrOrStderr())
			c, err := flags.newChecker(log)
			if err != nil {
				return err
			}
			return runValidateEntities(c, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	return cmd
}

func runValidateEntities(c *checker.Checker, output io.Writer) error {
	if !c.ValidateEntityReferences() {
		return fmt.Errorf("entity validation failed")
	}
	fmt.Fprintln(output, color.GreenString("All entity references are valid."))
	return nil
}
