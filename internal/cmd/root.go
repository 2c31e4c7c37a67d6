// Package cmd wires the finx command line interface. Each subcommand is a
// thin layer over the checker, entity, and archive packages; all flag
// handling and rendering lives here.
package cmd

import (
	"io"
	"os"

	"github.com/harrison/finx/internal/checker"
	"github.com/harrison/finx/internal/logger"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// globalFlags carries the options shared by every subcommand.
type globalFlags struct {
	basePath         string
	configFile       string
	privateConfig    string
	directoryMapping string
	entitiesFile     string
	logLevel         string
	verbose          bool
}

// NewRootCommand creates and returns the root cobra command for finx
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "finx",
		Short: "Financial document compliance checker",
		Long: `Finx checks a directory tree of financial documents (payslips, bank
statements, investment reports) against a YAML catalog of required
documents, reports what is missing per tax year, and can bundle the
matched documents into a password-protected archive.

Configuration is layered: finx_base.yml provides the shared catalog and
finx_private.yml overrides and extends it with private accounts.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.basePath, "base-path", "b", ".", "Base path containing the financial documents")
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to base configuration file (default: finx_base.yml)")
	pf.StringVarP(&flags.privateConfig, "private-config", "p", "", "Path to private configuration file (default: finx_private.yml)")
	pf.StringVarP(&flags.directoryMapping, "directory-mapping", "d", "", "Path to directory mapping file (default: directory_mapping.yml)")
	pf.StringVarP(&flags.entitiesFile, "entities-file", "e", "", "Path to entities file (default: finx_entities.yml)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output (equivalent to --log-level debug)")

	// Add subcommands
	cmd.AddCommand(NewCheckCommand(flags))
	cmd.AddCommand(NewYearsCommand(flags))
	cmd.AddCommand(NewUpdateDatesCommand(flags))
	cmd.AddCommand(NewEntitiesCommand(flags))
	cmd.AddCommand(NewValidateEntitiesCommand(flags))
	cmd.AddCommand(NewArchiveCommand(flags))

	return cmd
}

// newLogger builds the console logger for a command invocation. Progress
// goes to stderr so stdout stays clean for rendered results.
func (f *globalFlags) newLogger(errWriter io.Writer) *logger.ConsoleLogger {
	if errWriter == nil {
		errWriter = os.Stderr
	}
	level := f.logLevel
	if f.verbose {
		level = "debug"
	}
	return logger.New(errWriter, level)
}

// newChecker constructs a checker from the global flags.
func (f *globalFlags) newChecker(log *logger.ConsoleLogger) (*checker.Checker, error) {
	return checker.New(checker.Options{
		BasePath:             f.basePath,
		ConfigFile:           f.configFile,
		PrivateConfigFile:    f.privateConfig,
		DirectoryMappingFile: f.directoryMapping,
		EntitiesFile:         f.entitiesFile,
		Logger:               log,
	})
}
