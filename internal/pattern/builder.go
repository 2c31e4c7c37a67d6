package pattern

import "strings"

// Standard pattern fragments shared by every document type.
const (
	// DatePattern matches the YYYY-MM-DD token documents are prefixed with
	DatePattern = `\d{4}-\d{2}-\d{2}`
	// ExtensionPattern anchors the match to a .pdf filename
	ExtensionPattern = `\.pdf$`
)

// Build constructs a filename match expression from declarative components:
// the date marker, then base, identifier alternation, qualifier, and suffix
// joined by underscores (absent parts omitted), ending in the fixed .pdf
// anchor. Identifiers become a non-capturing alternation group.
//
// Construction is purely textual; an empty base still yields a valid, if
// semantically empty, expression.
func Build(base, suffix, qualifier string, identifiers []string) string {
	parts := []string{DatePattern, base}

	if len(identifiers) > 0 {
		parts = append(parts, "(?:"+strings.Join(identifiers, "|")+")")
	}
	if qualifier != "" {
		parts = append(parts, qualifier)
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}

	return strings.Join(parts, "_") + ExtensionPattern
}
