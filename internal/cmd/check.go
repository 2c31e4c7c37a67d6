package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/finx/internal/checker"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check subcommand
func NewCheckCommand(flags *globalFlags) *cobra.Command {
	var (
		year        string
		listMissing bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check document compliance for one or all tax years",
		Long: `Check the document tree against the required-document catalog.

For each tax year, every catalog entry is matched against the files on
disk and validated against its expected frequency (monthly, quarterly,
yearly). Missing documents are reported with suggested filenames and the
directories they should be placed in.

Examples:
  finx check --year 2023
  finx check --base-path ~/documents/tax
  finx check --year 2023 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.newLogger(cmd.ErrOrStderr())
			c, err := flags.newChecker(log)
			if err != nil {
				return err
			}
			return runCheck(c, cmd.OutOrStdout(), year, listMissing, format)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&year, "year", "y", "", "Specific tax year to check (default: all available years)")
	cmd.Flags().BoolVar(&listMissing, "list-missing", true, "Generate placeholder filenames for missing documents")
	cmd.Flags().StringVar(&format, "format", "text", "Output format for missing documents (text, json, csv)")

	return cmd
}

func runCheck(c *checker.Checker, output io.Writer, year string, listMissing bool, format string) error {
	years := []string{year}
	if year == "" {
		years = c.ListAvailableYears()
		if len(years) == 0 {
			return fmt.Errorf("no tax years found under %s", c.BasePath())
		}
	}

	allOK := true
	var reports []*checker.YearReport
	for _, y := range years {
		report := c.CheckYear(y, listMissing)
		reports = append(reports, report)
		if !report.AllFound {
			allOK = false
		}
	}

	renderSummaryTable(output, reports)

	switch format {
	case "json":
		if err := renderMissingJSON(output, reports); err != nil {
			return err
		}
	case "csv":
		if err := renderMissingCSV(output, reports); err != nil {
			return err
		}
	default:
		renderMissingText(output, reports)
	}

	if !allOK {
		return fmt.Errorf("missing documents found")
	}
	fmt.Fprintln(output, color.GreenString("All required documents are present."))
	return nil
}

// renderSummaryTable prints one row per checked year with found and missing
// counts per category.
func renderSummaryTable(output io.Writer, reports []*checker.YearReport) {
	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Year", "Found", "Missing", "Status"})

	for _, report := range reports {
		status := color.GreenString("complete")
		if !report.AllFound {
			status = color.RedString("incomplete")
		}
		t.AppendRow(table.Row{
			report.Year,
			len(report.FoundFiles),
			len(report.MissingFiles),
			status,
		})
	}
	t.Render()
}

func renderMissingText(output io.Writer, reports []*checker.YearReport) {
	for _, report := range reports {
		if len(report.MissingFiles) == 0 {
			continue
		}
		fmt.Fprintf(output, "\nMissing documents for %s:\n", report.Year)
		for _, mf := range report.MissingFiles {
			fmt.Fprintf(output, "- %s\n", mf.Path)
			if mf.URL != "" {
				fmt.Fprintf(output, "  can be found at: %s\n", mf.URL)
			}
		}
	}
}

func renderMissingJSON(output io.Writer, reports []*checker.YearReport) error {
	type missingDoc struct {
		Year      string `json:"year"`
		Path      string `json:"path"`
		Name      string `json:"name"`
		Frequency string `json:"frequency"`
		Category  string `json:"category"`
		URL       string `json:"url,omitempty"`
	}

	docs := []missingDoc{}
	for _, report := range reports {
		for _, mf := range report.MissingFiles {
			docs = append(docs, missingDoc{
				Year:      report.Year,
				Path:      mf.Path,
				Name:      mf.Name,
				Frequency: mf.Frequency,
				Category:  mf.Category,
				URL:       mf.URL,
			})
		}
	}

	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func renderMissingCSV(output io.Writer, reports []*checker.YearReport) error {
	w := csv.NewWriter(output)
	if err := w.Write([]string{"year", "path", "name", "frequency", "category", "url"}); err != nil {
		return err
	}
	for _, report := range reports {
		for _, mf := range report.MissingFiles {
			record := []string{report.Year, mf.Path, mf.Name, mf.Frequency, mf.Category, mf.URL}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
