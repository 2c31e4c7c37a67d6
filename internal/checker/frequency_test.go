package checker

import (
	"fmt"
	"testing"

	"github.com/harrison/finx/internal/pattern"
)

func monthFiles(year string, months int) []string {
	files := make([]string, 0, months)
	for m := 1; m <= months; m++ {
		files = append(files, fmt.Sprintf("/docs/%s/%s-%02d-01_acme.pdf", year, year, m))
	}
	return files
}

// TestValidateFrequencyTable covers the fixed expectation table
func TestValidateFrequencyTable(t *testing.T) {
	entry := pattern.Entry{ID: "acme"}

	tests := []struct {
		name         string
		matches      []string
		frequency    string
		wantOK       bool
		wantFound    int
		wantExpected int
	}{
		{"monthly empty", nil, "monthly", false, 0, 12},
		{"monthly complete", monthFiles("2023", 12), "monthly", true, 12, 12},
		{"monthly shortfall", monthFiles("2023", 5), "monthly", false, 5, 12},
		{"quarterly empty", nil, "quarterly", false, 0, 4},
		{"yearly one file", monthFiles("2023", 1), "yearly", true, 1, 1},
		{"annual empty", nil, "annual", false, 0, 1},
		{"once one file", monthFiles("2023", 1), "once", true, 1, 1},
		{"unknown with files", monthFiles("2023", 3), "ad-hoc", true, 3, 1},
		{"unknown empty", nil, "ad-hoc", false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, found, expected := ValidateFrequency(tt.matches, tt.frequency, "2023", entry)
			if ok != tt.wantOK || found != tt.wantFound || expected != tt.wantExpected {
				t.Errorf("ValidateFrequency() = (%v, %d, %d), want (%v, %d, %d)",
					ok, found, expected, tt.wantOK, tt.wantFound, tt.wantExpected)
			}
		})
	}
}

// TestValidateFrequencyYearFilter verifies files from other years are not
// counted
func TestValidateFrequencyYearFilter(t *testing.T) {
	matches := append(monthFiles("2023", 12), monthFiles("2022", 12)...)

	ok, found, expected := ValidateFrequency(matches, "monthly", "2023", pattern.Entry{ID: "acme"})

	if !ok || found != 12 || expected != 12 {
		t.Errorf("ValidateFrequency() = (%v, %d, %d), want (true, 12, 12)", ok, found, expected)
	}
}

// TestValidateFrequencyClippedWindow verifies the expected count shrinks to
// the months the validity window covers within the year
func TestValidateFrequencyClippedWindow(t *testing.T) {
	tests := []struct {
		name         string
		frequency    string
		startDate    string
		endDate      string
		wantExpected int
	}{
		{"monthly mid-year start", "monthly", "2023-07-01", "", 6},
		{"monthly mid-year end", "monthly", "", "2023-03-15", 3},
		{"monthly interior window", "monthly", "2023-04-01", "2023-09-30", 6},
		{"quarterly mid-year start", "quarterly", "2023-07-01", "", 2},
		{"quarterly one month", "quarterly", "2023-06-01", "2023-06-30", 1},
		{"monthly unbounded", "monthly", "", "", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := pattern.Entry{ID: "acme", StartDate: tt.startDate, EndDate: tt.endDate}
			// One matching file so the clipping path is taken
			_, _, expected := ValidateFrequency(monthFiles("2023", 1), tt.frequency, "2023", entry)
			if expected != tt.wantExpected {
				t.Errorf("expected count = %d, want %d", expected, tt.wantExpected)
			}
		})
	}
}

// TestValidateFrequencyBadBoundsFallBack verifies unparseable bounds fall
// back to the table default
func TestValidateFrequencyBadBoundsFallBack(t *testing.T) {
	entry := pattern.Entry{ID: "acme", StartDate: "not-a-date"}

	_, _, expected := ValidateFrequency(monthFiles("2023", 2), "monthly", "2023", entry)

	if expected != 12 {
		t.Errorf("expected count = %d, want table default 12", expected)
	}
}

// TestValidateFrequencyAnnualExclusion verifies annual summary files are
// excluded from periodic counts
func TestValidateFrequencyAnnualExclusion(t *testing.T) {
	matches := append(monthFiles("2023", 12), "/docs/2023/2023-12-31_acme_TaxSummary.pdf")
	entry := pattern.Entry{ID: "acme", AnnualDocType: "taxsummary"}

	ok, found, expected := ValidateFrequency(matches, "monthly", "2023", entry)

	if !ok || found != 12 || expected != 12 {
		t.Errorf("ValidateFrequency() = (%v, %d, %d), want (true, 12, 12)", ok, found, expected)
	}
}

func TestCheckAnnualDocuments(t *testing.T) {
	matches := []string{
		"/docs/2023/2023-01-31_acme.pdf",
		"/docs/2023/2023-12-31_acme_TaxSummary.pdf",
	}

	ok, found, expected := CheckAnnualDocuments(matches, "2023", "taxsummary")
	if !ok || found != 1 || expected != 1 {
		t.Errorf("CheckAnnualDocuments() = (%v, %d, %d), want (true, 1, 1)", ok, found, expected)
	}

	ok, found, _ = CheckAnnualDocuments(matches, "2022", "taxsummary")
	if ok || found != 0 {
		t.Errorf("CheckAnnualDocuments() for wrong year = (%v, %d), want (false, 0)", ok, found)
	}

	ok, _, _ = CheckAnnualDocuments(nil, "2023", "taxsummary")
	if ok {
		t.Error("CheckAnnualDocuments(nil) should not be satisfied")
	}
}
