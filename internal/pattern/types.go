// Package pattern builds filename match expressions and flattens the merged
// finx configuration into a catalog of expected documents per category.
package pattern

// Categories are the six fixed catalog keys. Every catalog carries all of
// them, each possibly empty — a category is never absent.
var Categories = []string{
	"employment",
	"investment_us",
	"investment_uk",
	"bank_uk",
	"bank_us",
	"additional",
}

// Entry describes one expected recurring (or one-off) document.
type Entry struct {
	// Pattern is the regex source matched against base filenames
	Pattern string
	// ID is the document identifier. Required; entries without one are
	// dropped during flattening.
	ID string
	// EntityID identifies the issuing entity. Defaults to ID for backward
	// compatibility with configs predating the entities file.
	EntityID string
	// Name is the display name
	Name string
	// Frequency is one of monthly, quarterly, yearly, annual, once.
	// Any other value means "at least one file per year".
	Frequency string
	// StartDate and EndDate bound the validity window (ISO dates).
	// Empty means unbounded on that side.
	StartDate string
	EndDate   string
	// URL is where the document can be obtained, resolved from the
	// entities file when possible
	URL string
	// AnnualDocType names an annual summary document sharing this pattern
	// family; such files are excluded from monthly/quarterly counts.
	AnnualDocType string
}

// Catalog maps category name to its ordered entries.
type Catalog map[string][]Entry

// NewCatalog returns a catalog with all fixed categories present and empty.
func NewCatalog() Catalog {
	c := make(Catalog, len(Categories))
	for _, category := range Categories {
		c[category] = []Entry{}
	}
	return c
}
