package checker

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/harrison/finx/internal/config"
	"github.com/harrison/finx/internal/fileutil"
	"github.com/harrison/finx/internal/pattern"
)

// AccountDates records the observed activity window for one document id:
// the earliest and latest dates embedded in matched filenames, plus the
// matched base names for audit.
type AccountDates struct {
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
	Files     []string `yaml:"files"`
}

// analyzeAccountDates scans all matching files for every catalog entry,
// across all years, and derives each entry's activity window. Files whose
// names carry no parseable date still count as matches but contribute no
// bounds. Keyed by document id.
func (c *Checker) analyzeAccountDates() map[string]AccountDates {
	accountDates := map[string]AccountDates{}

	for _, category := range pattern.Categories {
		for _, entry := range c.catalog[category] {
			re, err := c.compile(entry)
			if err != nil {
				c.log.Warnf("%v", err)
				continue
			}

			matches := c.matcher.Find(re, "", category)
			if len(matches) == 0 {
				continue
			}

			var start, end time.Time
			haveDates := false
			files := make([]string, 0, len(matches))
			for _, match := range matches {
				name := filepath.Base(match)
				files = append(files, name)
				date, ok := fileutil.DateFromName(name)
				if !ok {
					c.log.Debugf("no date token in %s", name)
					continue
				}
				if !haveDates || date.Before(start) {
					start = date
				}
				if !haveDates || date.After(end) {
					end = date
				}
				haveDates = true
			}
			sort.Strings(files)

			info := AccountDates{Files: files}
			if haveDates {
				info.StartDate = start.Format("2006-01-02")
				info.EndDate = end.Format("2006-01-02")
			}
			accountDates[entry.ID] = info
		}
	}

	return accountDates
}

// UpdateDates folds the derived account date windows back into the private
// configuration document and writes it to disk under a file lock. The
// employment section is flattened from the legacy categorized shape when
// present. Records without derived dates are left untouched.
//
// The write serializes the in-memory private document; running this
// concurrently with another process writing the same file is not safe.
func (c *Checker) UpdateDates() (config.Document, error) {
	if c.privateConfigFile == "" {
		return nil, fmt.Errorf("no private configuration file to update")
	}

	updated := config.Merge(c.privateConfig, nil)

	c.updateEmploymentDates(updated)

	for _, kind := range []string{"investment", "bank"} {
		regions, ok := updated[kind].(map[string]any)
		if !ok {
			continue
		}
		for _, region := range config.Regions {
			records, isList := regions[region].([]any)
			if !isList {
				continue
			}
			for _, item := range records {
				record, isMap := item.(map[string]any)
				if !isMap {
					continue
				}
				if kind == "bank" {
					if accountTypes, hasTypes := record["account_types"].([]any); hasTypes && len(accountTypes) > 0 {
						for _, at := range accountTypes {
							atRecord, atIsMap := at.(map[string]any)
							if !atIsMap {
								continue
							}
							if _, hasID := atRecord["id"].(string); !hasID {
								c.log.Errorf("missing id in account_type for bank %v", record["id"])
								continue
							}
							c.applyDates(atRecord)
						}
						continue
					}
				}
				c.applyDates(record)
			}
		}
	}

	if additional, ok := updated["additional"].([]any); ok {
		for _, item := range additional {
			if record, isMap := item.(map[string]any); isMap {
				c.applyDates(record)
			}
		}
	}

	if err := config.Save(c.privateConfigFile, updated); err != nil {
		return nil, err
	}
	c.log.Infof("updated %s with inferred dates", c.privateConfigFile)

	c.privateConfig = updated
	return updated, nil
}

// updateEmploymentDates handles both employment shapes. The legacy
// categorized mapping is converted to the flat list while dates are
// applied, so the written document always carries the current shape.
func (c *Checker) updateEmploymentDates(doc config.Document) {
	switch employment := doc["employment"].(type) {
	case []any:
		for _, item := range employment {
			if record, isMap := item.(map[string]any); isMap {
				c.applyDates(record)
			}
		}
	case map[string]any:
		var flat []any
		for _, subCategory := range []string{"current", "previous", "generic"} {
			records, ok := employment[subCategory].([]any)
			if !ok {
				continue
			}
			for _, item := range records {
				if record, isMap := item.(map[string]any); isMap {
					c.applyDates(record)
				}
				flat = append(flat, item)
			}
		}
		doc["employment"] = flat
	}
}

// applyDates copies the derived window onto a record when one exists for
// its id.
func (c *Checker) applyDates(record map[string]any) {
	id, _ := record["id"].(string)
	if id == "" {
		return
	}
	info, ok := c.accountDates[id]
	if !ok || info.StartDate == "" {
		return
	}
	record["start_date"] = info.StartDate
	record["end_date"] = info.EndDate
}
