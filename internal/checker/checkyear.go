package checker

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/finx/internal/fileutil"
	"github.com/harrison/finx/internal/pattern"
)

// CheckYear checks all catalog entries against the document tree for one
// tax year and returns the aggregated report. Entries whose validity window
// lies wholly outside the year are skipped without producing any report
// activity. When listMissing is true, placeholder filenames are generated
// for every absent document at the granularity of the entry's frequency, so
// the operator sees exactly what to obtain and where to file it.
//
// The whole year is checked before the report is returned; sub-period
// placeholder generation needs the complete match set.
func (c *Checker) CheckYear(year string, listMissing bool) *YearReport {
	c.log.Infof("checking documents for tax year %s", year)

	report := &YearReport{
		Year:         year,
		AllFound:     true,
		FoundFiles:   []string{},
		MissingFiles: []MissingFile{},
		Errors:       []string{},
		Categories:   map[string][]string{},
	}
	for _, category := range pattern.Categories {
		report.Categories[category] = []string{}
	}

	for _, category := range pattern.Categories {
		entries := c.catalog[category]
		if len(entries) == 0 {
			continue
		}
		c.log.Debugf("checking category %s (%d entries)", category, len(entries))

		for _, entry := range entries {
			if c.skipForYear(entry, year) {
				continue
			}

			re, err := c.compile(entry)
			if err != nil {
				c.log.Errorf("%v", err)
				report.Errors = append(report.Errors, err.Error())
				continue
			}

			matches := c.matcher.Find(re, year, category)

			if len(matches) == 0 {
				c.log.Warnf("no files found for %s (%s)", entry.ID, entry.Frequency)
				c.log.Warnf("  pattern used: %s", entry.Pattern)
				if entry.URL != "" {
					c.log.Infof("  document can be found at: %s", entry.URL)
				}
				if listMissing {
					report.MissingFiles = append(report.MissingFiles,
						c.placeholdersForEntry(entry, category, year, nil)...)
				}
				report.AllFound = false
				continue
			}

			report.Categories[category] = append(report.Categories[category], matches...)
			report.FoundFiles = append(report.FoundFiles, matches...)

			satisfied, found, expected := ValidateFrequency(matches, entry.Frequency, year, entry)
			if satisfied {
				c.log.Infof("found %d files for %s (%s)", found, entry.ID, entry.Frequency)
				continue
			}

			c.log.Warnf("found %d files for %s (%s), expected %d", found, entry.ID, entry.Frequency, expected)
			if entry.URL != "" {
				c.log.Infof("  document can be found at: %s", entry.URL)
			}
			if listMissing {
				report.MissingFiles = append(report.MissingFiles,
					c.placeholdersForEntry(entry, category, year, matches)...)
			}
			report.AllFound = false
		}
	}

	c.summarizeMissing(report)
	return report
}

// skipForYear applies the date-range gate: an entry is skipped when its
// validity window lies wholly outside the target calendar year. A missing
// bound extends the window to infinity on that side; unparseable bounds
// disable the gate with a warning.
func (c *Checker) skipForYear(entry pattern.Entry, year string) bool {
	yearStart, err := time.Parse("2006-01-02", year+"-01-01")
	if err != nil {
		c.log.Warnf("could not parse year %q, proceeding with check", year)
		return false
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

	start, startErr := time.Parse("2006-01-02", startDate)
	end, endErr := time.Parse("2006-01-02", endDate)
	if startErr != nil || endErr != nil {
		c.log.Warnf("could not parse validity dates for %s, proceeding with check", entry.ID)
		return false
	}

	if end.Before(yearStart) || start.After(yearEnd) {
		c.log.Infof("skipping %s (%s) - not active in %s (active %d to %d)",
			entry.ID, entry.Frequency, year, start.Year(), end.Year())
		return true
	}
	return false
}

// placeholdersForEntry generates missing-file placeholders for one entry.
// With no matches, the full expected set is generated at frequency
// granularity; with partial matches, only the absent months or quarters.
// Each placeholder is duplicated once per directory the category maps to.
func (c *Checker) placeholdersForEntry(entry pattern.Entry, category, year string, matches []string) []MissingFile {
	var names []string

	switch entry.Frequency {
	case "monthly":
		found := map[int]bool{}
		for _, m := range matches {
			if month, ok := fileutil.MonthFromName(filepath.Base(m)); ok {
				found[month] = true
			}
		}
		for month := 1; month <= 12; month++ {
			if !found[month] {
				names = append(names, fmt.Sprintf("%s-%02d-DD_%s.pdf", year, month, entry.ID))
			}
		}
	case "quarterly":
		found := map[int]bool{}
		for _, m := range matches {
			if month, ok := fileutil.MonthFromName(filepath.Base(m)); ok {
				found[(month-1)/3+1] = true
			}
		}
		for quarter := 1; quarter <= 4; quarter++ {
			if !found[quarter] {
				names = append(names, fmt.Sprintf("%s-Q%d-DD_%s.pdf", year, quarter, entry.ID))
			}
		}
	default:
		// yearly, annual, once, and unknown frequencies expect one file
		if len(matches) == 0 {
			names = append(names, fmt.Sprintf("%s-MM-DD_%s.pdf", year, entry.ID))
		}
	}

	targetDirs := c.mapping[category]
	if len(targetDirs) == 0 {
		targetDirs = []string{""}
	}

	var missing []MissingFile
	for _, name := range names {
		c.log.Infof("  generated placeholder filename: %s", name)
		for _, dir := range targetDirs {
			var fullPath string
			if dir != "" {
				fullPath = filepath.Join(c.basePath, dir, name)
			} else {
				// Unmapped categories fall back to the year directory.
				fullPath = filepath.Join(c.basePath, year, name)
			}
			missing = append(missing, MissingFile{
				Path:      fullPath,
				Name:      entry.ID,
				Frequency: entry.Frequency,
				Category:  category,
				URL:       entry.URL,
			})
		}
	}
	return missing
}

// summarizeMissing logs the missing documents grouped by category, with the
// directories the operator should place them in.
func (c *Checker) summarizeMissing(report *YearReport) {
	if len(report.MissingFiles) == 0 {
		return
	}

	c.log.Warnf("missing or incomplete documents for %s:", report.Year)

	byCategory := map[string][]MissingFile{}
	for _, mf := range report.MissingFiles {
		byCategory[mf.Category] = append(byCategory[mf.Category], mf)
	}

	for _, category := range pattern.Categories {
		files := byCategory[category]
		if len(files) == 0 {
			continue
		}
		if dirs := c.mapping[category]; len(dirs) > 0 {
			c.log.Warnf("category %s - place in: %v", category, dirs)
		} else {
			c.log.Warnf("category %s", category)
		}
		for _, mf := range files {
			path := mf.Path
			if rel, err := filepath.Rel(c.basePath, path); err == nil && c.basePath != "" {
				path = rel
			}
			c.log.Warnf("- %s", path)
			if mf.URL != "" {
				c.log.Warnf("  can be found at: %s", mf.URL)
			}
		}
	}
}
