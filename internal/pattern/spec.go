package pattern

// Spec is one element of a record's patterns list. The configuration format
// allows either a bare string, used verbatim as the match expression, or a
// structured template expanded through Build. Modeling both as one sum type
// keeps downstream code free of repeated shape inspection.
type Spec interface {
	// Expression returns the match expression this spec denotes.
	Expression() string
}

// RawSpec is a verbatim match expression.
type RawSpec string

// Expression returns the raw expression unchanged.
func (r RawSpec) Expression() string { return string(r) }

// TemplateSpec is a declarative pattern template expanded through Build.
// It may carry its own validity bounds, which take precedence over the
// owning record's bounds.
type TemplateSpec struct {
	Base        string
	Suffix      string
	Qualifier   string
	Identifiers []string
	StartDate   string
	EndDate     string
}

// Expression expands the template through Build.
func (t TemplateSpec) Expression() string {
	return Build(t.Base, t.Suffix, t.Qualifier, t.Identifiers)
}

// DecodeSpec converts a raw YAML patterns element into a Spec. Strings
// become RawSpec; mappings become TemplateSpec. The qualifier component
// accepts both the current "qualifier" key and the legacy "account_type"
// key. Anything else decodes to nil and contributes no entry.
func DecodeSpec(v any) Spec {
	switch t := v.(type) {
	case string:
		return RawSpec(t)
	case map[string]any:
		spec := TemplateSpec{
			Base:      stringField(t, "base"),
			Suffix:    stringField(t, "suffix"),
			Qualifier: stringField(t, "qualifier"),
			StartDate: stringField(t, "start_date"),
			EndDate:   stringField(t, "end_date"),
		}
		if spec.Qualifier == "" {
			spec.Qualifier = stringField(t, "account_type")
		}
		if ids, ok := t["identifiers"].([]any); ok {
			for _, id := range ids {
				if s, isStr := id.(string); isStr {
					spec.Identifiers = append(spec.Identifiers, s)
				}
			}
		}
		return spec
	}
	return nil
}

// stringField reads a string-valued key from a YAML mapping, returning ""
// for absent or non-string values.
func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
