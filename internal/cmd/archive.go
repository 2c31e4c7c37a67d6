package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/finx/internal/archive"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewArchiveCommand creates the archive subcommand
func NewArchiveCommand(flags *globalFlags) *cobra.Command {
	var (
		year     string
		output   string
		password string
		dummy    bool
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Create a password-protected zip archive of the matched documents",
		Long: `Collect every document matching the catalog for the selected years and
bundle them into an AES-256 encrypted zip file with a manifest.

The compliance check runs first; when documents are missing, archiving
asks for confirmation before continuing.

Examples:
  finx archive --year 2023
  finx archive --output all_documents.zip
  finx archive --year 2023 --dummy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.newLogger(cmd.ErrOrStderr())
			c, err := flags.newChecker(log)
			if err != nil {
				return err
			}

			if password == "" && !dummy {
				password, err = promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			builder := archive.NewBuilder(c, log)
			result, err := builder.Create(archive.Options{
				Year:       year,
				OutputPath: output,
				Password:   password,
				Dummy:      dummy,
				Confirm:    confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
			})
			if err != nil {
				return err
			}

			if result.Written {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d files, %.2f MB)\n",
					result.OutputPath, len(result.Manifest.Files),
					float64(result.Manifest.TotalSize)/(1024*1024))
			} else if dummy {
				fmt.Fprintf(cmd.OutOrStdout(), "Dummy run: %d files would be archived to %s\n",
					len(result.Manifest.Files), result.OutputPath)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Archive creation cancelled.")
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&year, "year", "y", "", "Specific tax year to archive (default: all available years)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output zip path (default: tax_documents_<years>.zip)")
	cmd.Flags().StringVar(&password, "password", "", "Archive password (default: prompt)")
	cmd.Flags().BoolVar(&dummy, "dummy", false, "Report what would be archived without creating a zip")

	return cmd
}

// promptPassword reads and confirms the archive password without echo.
// Requires an interactive terminal; scripted runs must pass --password.
func promptPassword(output io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available to prompt for a password; use --password")
	}

	fmt.Fprint(output, "Enter password for the zip file: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(output)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(output, "Confirm password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Fprintln(output)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(password) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(password), nil
}

// confirmPrompt returns a confirmation callback reading a y/N answer.
func confirmPrompt(input io.Reader, output io.Writer) func() bool {
	return func() bool {
		fmt.Fprint(output, "\nDo you want to continue creating the zip file? (y/N): ")
		reader := bufio.NewReader(input)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(answer), "y")
	}
}
