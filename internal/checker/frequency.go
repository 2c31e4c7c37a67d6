package checker

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/finx/internal/pattern"
)

// FrequencyExpectations maps known frequencies to the number of files
// expected per calendar year.
var FrequencyExpectations = map[string]int{
	"monthly":   12,
	"quarterly": 4,
	"yearly":    1,
	"annual":    1,
	"once":      1,
}

// Sentinel bounds applied when an entry states no validity window.
const (
	unboundedStart = "1900-01-01"
	unboundedEnd   = "9999-12-31"
)

// ValidateFrequency checks whether the matched files for one entry satisfy
// its declared frequency in the target year.
//
// Matches are first filtered to the year. For monthly/quarterly entries
// with an annual document type, annual summary files are excluded from the
// count. The expected count comes from the frequency table, adjusted to the
// months actually covered when the entry's validity window clips the year.
// Unknown frequencies expect at least one file.
//
// Returns (satisfied, observed count, expected count). Zero matches for a
// known frequency report the table default, never zero, so the caller can
// state "expected N, found 0".
func ValidateFrequency(matches []string, frequency, year string, entry pattern.Entry) (bool, int, int) {
	expected, known := FrequencyExpectations[frequency]
	if !known {
		expected = 1
	}
	if len(matches) == 0 {
		return false, 0, expected
	}

	yearFiles := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(m, year) {
			yearFiles = append(yearFiles, m)
		}
	}

	// Regular statements and an annual summary can share a pattern family;
	// keep the summary out of the periodic count.
	if (frequency == "monthly" || frequency == "quarterly") && entry.AnnualDocType != "" {
		annualType := strings.ToLower(entry.AnnualDocType)
		filtered := yearFiles[:0]
		for _, f := range yearFiles {
			if !strings.Contains(strings.ToLower(filepath.Base(f)), annualType) {
				filtered = append(filtered, f)
			}
		}
		yearFiles = filtered
	}

	if !known {
		return len(yearFiles) >= 1, len(yearFiles), 1
	}

	if frequency == "monthly" || frequency == "quarterly" {
		if adjusted, ok := expectedForWindow(frequency, year, entry); ok {
			expected = adjusted
		}
	}

	return len(yearFiles) == expected, len(yearFiles), expected
}

// expectedForWindow recomputes the expected count from the entry's validity
// window clipped to the target calendar year. Returns false when the year
// or either bound fails to parse, in which case the table default stands.
func expectedForWindow(frequency, year string, entry pattern.Entry) (int, bool) {
	yearStart, err := time.Parse("2006-01-02", year+"-01-01")
	if err != nil {
		return 0, false
	}
	yearEnd := time.Date(yearStart.Year(), 12, 31, 0, 0, 0, 0, time.UTC)

	startDate := entry.StartDate
	if startDate == "" {
		startDate = unboundedStart
	}
	endDate := entry.EndDate
	if endDate == "" {
		endDate = unboundedEnd
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, false
	}

	effectiveStart := maxTime(yearStart, start)
	effectiveEnd := minTime(yearEnd, end)

	months := (effectiveEnd.Year()-effectiveStart.Year())*12 +
		int(effectiveEnd.Month()) - int(effectiveStart.Month()) + 1
	if months < 0 {
		months = 0
	}

	switch frequency {
	case "monthly":
		return months, true
	case "quarterly":
		return (months + 2) / 3, true
	}
	return 0, false
}

// CheckAnnualDocuments verifies exactly one annual summary document of the
// given type exists for the year among the matches.
func CheckAnnualDocuments(matches []string, year, annualDocType string) (bool, int, int) {
	if len(matches) == 0 {
		return false, 0, 1
	}

	annualType := strings.ToLower(annualDocType)
	count := 0
	for _, m := range matches {
		if strings.Contains(m, year) && strings.Contains(strings.ToLower(filepath.Base(m)), annualType) {
			count++
		}
	}
	return count == 1, count, 1
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
