package checker

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/harrison/finx/internal/fileutil"
	"github.com/harrison/finx/internal/logger"
)

// Matcher is the filesystem-access boundary of the checker. It returns the
// sorted full paths of PDF files whose base name matches expr, restricted
// to the given year when non-empty, searched in the directories mapped to
// category. Keeping this behind an interface lets the pure catalog and
// validation layers be tested without a real filesystem.
type Matcher interface {
	Find(expr *regexp.Regexp, year, category string) []string
}

// dirMatcher is the production Matcher: it resolves a category to its
// mapped search directories under the base path and scans them recursively.
type dirMatcher struct {
	basePath string
	mapping  map[string][]string
	log      *logger.ConsoleLogger
}

func newDirMatcher(basePath string, mapping map[string][]string, log *logger.ConsoleLogger) *dirMatcher {
	return &dirMatcher{basePath: basePath, mapping: mapping, log: log}
}

func (m *dirMatcher) Find(expr *regexp.Regexp, year, category string) []string {
	searchDirs := m.mapping[category]
	if len(searchDirs) == 0 {
		// Unmapped categories search the entire base tree.
		searchDirs = []string{""}
	}

	matches := []string{}
	for _, dir := range searchDirs {
		searchPath := filepath.Join(m.basePath, dir)

		info, err := os.Stat(searchPath)
		if err != nil || !info.IsDir() {
			m.log.Debugf("search directory does not exist: %s", searchPath)
			continue
		}

		result := fileutil.ScanPDFs(searchPath)
		for _, scanErr := range result.Errors {
			m.log.Errorf("error searching %s: %v", searchPath, scanErr)
		}

		for _, path := range result.Files {
			if !expr.MatchString(filepath.Base(path)) {
				continue
			}
			if year != "" && fileutil.YearFromPath(path) != year {
				continue
			}
			matches = append(matches, path)
		}
	}

	// Alphabetical order doubles as chronological order for date-prefixed
	// filenames.
	sort.Strings(matches)
	return matches
}
