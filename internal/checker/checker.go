// Package checker implements the finx compliance engine: it builds the
// pattern catalog from the merged configuration, matches the document tree
// against it, and produces per-year compliance reports.
package checker

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/harrison/finx/internal/config"
	"github.com/harrison/finx/internal/entity"
	"github.com/harrison/finx/internal/fileutil"
	"github.com/harrison/finx/internal/logger"
	"github.com/harrison/finx/internal/pattern"
)

// Options configures a Checker.
type Options struct {
	// BasePath is the root directory containing all financial documents
	BasePath string
	// TaxYearPath optionally pins the checker to one tax year directory
	TaxYearPath string
	// Explicit configuration file paths. Empty values fall back to the
	// default filenames searched in the working and base directories.
	ConfigFile           string
	PrivateConfigFile    string
	DirectoryMappingFile string
	EntitiesFile         string
	// Config, when non-nil, is used directly instead of loading and
	// merging the base and private documents
	Config config.Document
	// Logger receives progress and problem reports; nil discards
	Logger *logger.ConsoleLogger
	// Matcher overrides the filesystem boundary, for tests
	Matcher Matcher
}

// Checker owns one immutable snapshot of configuration, catalog, and
// account dates, built at construction. It is not safe for concurrent use;
// finx runs it once per invocation, synchronously.
type Checker struct {
	basePath    string
	taxYearPath string

	privateConfigFile string

	baseConfig    config.Document
	privateConfig config.Document
	merged        config.Document
	mapping       map[string][]string

	resolver *entity.Resolver
	catalog  pattern.Catalog

	accountDates map[string]AccountDates

	matcher Matcher
	log     *logger.ConsoleLogger
}

// New builds a Checker: configuration documents are located, loaded,
// merged, and normalized; the pattern catalog is flattened; account dates
// are derived from the document tree. Missing or malformed configuration
// degrades to empty structures per document, never a construction failure.
func New(opts Options) (*Checker, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	c := &Checker{
		basePath:    opts.BasePath,
		taxYearPath: opts.TaxYearPath,
		log:         log,
	}

	loader := config.NewLoader(log)

	if opts.Config != nil {
		c.baseConfig = config.Document{}
		c.privateConfig = config.Document{}
		c.merged = opts.Config
		c.mapping = map[string][]string{}
	} else {
		configFile := loader.FindFile(config.DefaultBaseFile, opts.ConfigFile, opts.BasePath)
		c.privateConfigFile = loader.FindFile(config.DefaultPrivateFile, opts.PrivateConfigFile, opts.BasePath)
		mappingFile := loader.FindFile(config.DefaultMappingFile, opts.DirectoryMappingFile, opts.BasePath)

		log.Debugf("loading configurations")
		c.baseConfig = loader.LoadDocument(configFile)
		c.privateConfig = loader.LoadDocument(c.privateConfigFile)
		c.mapping = loader.LoadDirectoryMapping(mappingFile)

		c.merged = config.Merge(c.baseConfig, c.privateConfig)
		config.NormalizeRegions(c.merged)
	}

	entitiesFile := opts.EntitiesFile
	if opts.Config == nil {
		entitiesFile = loader.FindFile(config.DefaultEntitiesFile, opts.EntitiesFile, opts.BasePath)
	}
	if entitiesFile != "" {
		log.Debugf("loading entities")
		entities, err := entity.NewManager(entitiesFile, log).Load()
		if err != nil {
			log.Errorf("failed to load entities: %v", err)
			entities = []entity.Entity{}
		}
		c.resolver = entity.NewResolver(entities)
	}

	log.Debugf("flattening configuration")
	if c.resolver != nil {
		c.catalog = pattern.Flatten(c.merged, c.resolver, log)
	} else {
		c.catalog = pattern.Flatten(c.merged, nil, log)
	}

	c.matcher = opts.Matcher
	if c.matcher == nil {
		c.matcher = newDirMatcher(opts.BasePath, c.mapping, log)
	}

	log.Debugf("analyzing account dates")
	c.accountDates = c.analyzeAccountDates()

	return c, nil
}

// RequiredPatterns returns the flattened pattern catalog.
func (c *Checker) RequiredPatterns() pattern.Catalog {
	return c.catalog
}

// AccountDates returns the derived activity windows keyed by document id.
func (c *Checker) AccountDates() map[string]AccountDates {
	return c.accountDates
}

// DirectoryMapping returns the category-to-directories mapping.
func (c *Checker) DirectoryMapping() map[string][]string {
	return c.mapping
}

// BasePath returns the document root.
func (c *Checker) BasePath() string {
	return c.basePath
}

// compile turns an entry's pattern into a regexp, reporting failures once
// per call site.
func (c *Checker) compile(e pattern.Entry) (*regexp.Regexp, error) {
	re, err := regexp.Compile(e.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern for %s: %w", e.ID, err)
	}
	return re, nil
}

// MatchEntry returns the files matching one catalog entry for the given
// year and category. An invalid pattern yields no matches.
func (c *Checker) MatchEntry(e pattern.Entry, year, category string) []string {
	re, err := c.compile(e)
	if err != nil {
		c.log.Warnf("%v", err)
		return nil
	}
	return c.matcher.Find(re, year, category)
}

// ListAvailableYears scans the document tree for calendar year tokens in
// PDF filenames and returns them sorted. A construction-time tax year path
// short-circuits to that single year.
func (c *Checker) ListAvailableYears() []string {
	if c.taxYearPath != "" {
		if year := fileutil.YearFromPath(c.taxYearPath); year != "" {
			return []string{year}
		}
		return []string{}
	}

	years := map[string]bool{}
	collect := func(re *regexp.Regexp, category string) {
		for _, path := range c.matcher.Find(re, "", category) {
			if year := fileutil.YearFromPath(path); year != "" {
				years[year] = true
			}
		}
	}

	anyPDF := regexp.MustCompile(`20\d{2}`)
	if len(c.mapping) == 0 {
		collect(anyPDF, "")
	} else {
		categories := make([]string, 0, len(c.mapping))
		for category := range c.mapping {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			collect(anyPDF, category)
		}
	}

	sorted := make([]string, 0, len(years))
	for year := range years {
		sorted = append(sorted, year)
	}
	sort.Strings(sorted)
	return sorted
}

// ValidateEntityReferences checks that every entity_id referenced by the
// merged configuration resolves against the entities file. Missing
// references are logged. Returns true when all references resolve.
func (c *Checker) ValidateEntityReferences() bool {
	if c.resolver == nil {
		c.log.Warnf("no entities file available for validation")
		return false
	}

	type missingRef struct {
		entityID string
		category string
		docID    string
	}
	var missing []missingRef

	checkRecord := func(record map[string]any, category string) {
		entityID, _ := record["entity_id"].(string)
		if entityID == "" {
			return
		}
		if !c.resolver.Has(entityID) {
			docID, _ := record["id"].(string)
			missing = append(missing, missingRef{entityID, category, docID})
		}
	}

	if employment, ok := c.merged["employment"].([]any); ok {
		for _, item := range employment {
			if record, isMap := item.(map[string]any); isMap {
				checkRecord(record, "employment")
			}
		}
	}

	for _, kind := range []string{"investment", "bank"} {
		regions, ok := c.merged[kind].(map[string]any)
		if !ok {
			continue
		}
		for _, region := range config.Regions {
			records, isList := regions[region].([]any)
			if !isList {
				continue
			}
			category := fmt.Sprintf("%s_%s", kind, region)
			for _, item := range records {
				record, isMap := item.(map[string]any)
				if !isMap {
					continue
				}
				checkRecord(record, category)
				if accountTypes, hasTypes := record["account_types"].([]any); hasTypes {
					for _, at := range accountTypes {
						if atRecord, atIsMap := at.(map[string]any); atIsMap {
							checkRecord(atRecord, category)
						}
					}
				}
			}
		}
	}

	if additional, ok := c.merged["additional"].([]any); ok {
		for _, item := range additional {
			if record, isMap := item.(map[string]any); isMap {
				checkRecord(record, "additional")
			}
		}
	}

	if len(missing) > 0 {
		c.log.Warnf("found %d missing entity references:", len(missing))
		for _, ref := range missing {
			c.log.Warnf("  missing entity %q referenced by %s/%s", ref.entityID, ref.category, ref.docID)
		}
		return false
	}
	return true
}
