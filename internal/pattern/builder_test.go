package pattern

import (
	"regexp"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		base        string
		suffix      string
		qualifier   string
		identifiers []string
		want        string
	}{
		{
			name: "base only",
			base: "acme",
			want: `\d{4}-\d{2}-\d{2}_acme\.pdf$`,
		},
		{
			name:   "base and suffix",
			base:   "acme",
			suffix: "payslip",
			want:   `\d{4}-\d{2}-\d{2}_acme_payslip\.pdf$`,
		},
		{
			name:        "identifier alternation",
			base:        "hsbc",
			identifiers: []string{"1234", "5678"},
			want:        `\d{4}-\d{2}-\d{2}_hsbc_(?:1234|5678)\.pdf$`,
		},
		{
			name:        "all components",
			base:        "hsbc",
			suffix:      "statement",
			qualifier:   "savings",
			identifiers: []string{"1234"},
			want:        `\d{4}-\d{2}-\d{2}_hsbc_(?:1234)_savings_statement\.pdf$`,
		},
		{
			name: "empty base still valid",
			base: "",
			want: `\d{4}-\d{2}-\d{2}_\.pdf$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.base, tt.suffix, tt.qualifier, tt.identifiers)
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
			if _, err := regexp.Compile(got); err != nil {
				t.Errorf("Build() produced an invalid expression: %v", err)
			}
		})
	}
}

// TestBuildRoundTrip verifies a filename constructed from the same
// components matches the built expression
func TestBuildRoundTrip(t *testing.T) {
	expr := Build("hsbc", "statement", "savings", []string{"1234", "5678"})
	re := regexp.MustCompile(expr)

	matching := []string{
		"2023-01-31_hsbc_1234_savings_statement.pdf",
		"2021-12-01_hsbc_5678_savings_statement.pdf",
	}
	for _, name := range matching {
		if !re.MatchString(name) {
			t.Errorf("expected %q to match %q", name, expr)
		}
	}

	nonMatching := []string{
		"2023-01-31_hsbc_9999_savings_statement.pdf", // unknown identifier
		"2023-01-31_hsbc_1234_savings_statement.PDF", // extension is case-sensitive
		"hsbc_1234_savings_statement.pdf",            // no date marker
	}
	for _, name := range nonMatching {
		if re.MatchString(name) {
			t.Errorf("expected %q not to match %q", name, expr)
		}
	}
}

func TestDecodeSpec(t *testing.T) {
	if s := DecodeSpec("raw_expr"); s == nil || s.Expression() != "raw_expr" {
		t.Errorf("DecodeSpec(string) = %v", s)
	}

	s := DecodeSpec(map[string]any{
		"base":        "acme",
		"suffix":      "payslip",
		"identifiers": []any{"a", "b"},
		"start_date":  "2020-01-01",
	})
	tmpl, ok := s.(TemplateSpec)
	if !ok {
		t.Fatalf("DecodeSpec(map) = %T, want TemplateSpec", s)
	}
	if tmpl.StartDate != "2020-01-01" {
		t.Errorf("StartDate = %q", tmpl.StartDate)
	}
	if tmpl.Expression() != `\d{4}-\d{2}-\d{2}_acme_(?:a|b)_payslip\.pdf$` {
		t.Errorf("Expression() = %q", tmpl.Expression())
	}

	// Legacy account_type key maps to the qualifier slot
	legacy := DecodeSpec(map[string]any{"base": "hsbc", "account_type": "isa"}).(TemplateSpec)
	if legacy.Qualifier != "isa" {
		t.Errorf("Qualifier = %q, want isa", legacy.Qualifier)
	}

	if DecodeSpec(nil) != nil {
		t.Error("DecodeSpec(nil) should be nil")
	}
	if DecodeSpec(42) != nil {
		t.Error("DecodeSpec(int) should be nil")
	}
}
