package checker

// MissingFile describes one expected document that was not found, placed at
// the path where the operator should file it.
type MissingFile struct {
	Path      string `yaml:"path"`
	Name      string `yaml:"name"`
	Frequency string `yaml:"frequency"`
	Category  string `yaml:"category"`
	URL       string `yaml:"url,omitempty"`
}

// YearReport aggregates the compliance check for one tax year. AllFound is
// false iff at least one catalog entry active during the year failed its
// frequency check or had zero matches.
type YearReport struct {
	Year         string              `yaml:"year"`
	AllFound     bool                `yaml:"all_found"`
	FoundFiles   []string            `yaml:"found_files"`
	MissingFiles []MissingFile       `yaml:"missing_files"`
	Errors       []string            `yaml:"errors"`
	Categories   map[string][]string `yaml:"categories"`
}
