package fileutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	yearToken = regexp.MustCompile(`20\d{2}`)
	dateToken = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	yearMonth = regexp.MustCompile(`(\d{4})-(\d{2})`)
)

// ScanResult contains the results of a directory scan.
type ScanResult struct {
	// Files contains the full paths of all PDF files found
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanPDFs recursively enumerates every regular .pdf file under dir.
// Walk errors (unreadable subdirectories, permission denied) are collected
// in the result and the walk continues; the affected directory simply
// contributes no files. Results are sorted alphabetically, which orders
// date-prefixed filenames chronologically.
func ScanPDFs(dir string) *ScanResult {
	result := &ScanResult{Files: make([]string, 0)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".pdf") {
			result.Files = append(result.Files, path)
		}
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("error walking %s: %w", dir, err))
	}

	sort.Strings(result.Files)
	return result
}

// YearFromPath extracts the first 20xx year token found anywhere in the
// path. Returns "" when no token is present.
func YearFromPath(path string) string {
	return yearToken.FindString(path)
}

// DateFromName extracts the YYYY-MM-DD date token from a base filename.
// Returns false when no token is present or the token is not a real date.
func DateFromName(name string) (time.Time, bool) {
	token := dateToken.FindString(name)
	if token == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", token)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthFromName extracts the month number from the leading YYYY-MM portion
// of a filename. Returns false when no such token is present.
func MonthFromName(name string) (int, bool) {
	m := yearMonth.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	month := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	if month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}
