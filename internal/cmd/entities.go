package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/finx/internal/config"
	"github.com/harrison/finx/internal/entity"
	"github.com/harrison/finx/internal/logger"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewEntitiesCommand creates the entities subcommand
func NewEntitiesCommand(flags *globalFlags) *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List the financial entities in the entities file",
		Long: `List the entities (banks, employers, brokers) recorded in the entities
file, optionally filtered by type.

Valid types: accountant, bank, investment, insurance, legal, government,
employer, utility, other.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.newLogger(cmd.ErrOrStderr())
			manager, err := flags.entityManager(log)
			if err != nil {
				return err
			}
			return runEntities(manager, cmd.OutOrStdout(), typeFilter)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Only list entities of this type")

	return cmd
}

// entityManager resolves the entities file from the flags and wraps it in a
// Manager.
func (f *globalFlags) entityManager(log *logger.ConsoleLogger) (*entity.Manager, error) {
	loader := config.NewLoader(log)
	path := loader.FindFile(config.DefaultEntitiesFile, f.entitiesFile, f.basePath)
	return entity.NewManager(path, log), nil
}

func runEntities(manager *entity.Manager, output io.Writer, typeFilter string) error {
	var entityType entity.Type
	if typeFilter != "" {
		parsed, err := entity.ParseType(typeFilter)
		if err != nil {
			return err
		}
		entityType = parsed
	}

	entities, err := manager.List(entityType)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		fmt.Fprintln(output, "No entities found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Type", "URL"})
	for _, e := range entities {
		t.AppendRow(table.Row{e.ID, e.Name, string(e.Type), e.URL})
	}
	t.Render()

	fmt.Fprintf(output, "%d entities\n", len(entities))
	return nil
}
