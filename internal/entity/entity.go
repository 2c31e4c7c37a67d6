// Package entity manages the directory of financial entities (banks,
// employers, brokers) referenced by pattern catalog entries. The entities
// file is optional; it only enriches catalog entries with display names and
// source URLs.
package entity

import (
	"fmt"
	"strings"
)

// Type classifies an entity.
type Type string

const (
	TypeAccountant Type = "accountant"
	TypeBank       Type = "bank"
	TypeInvestment Type = "investment"
	TypeInsurance  Type = "insurance"
	TypeLegal      Type = "legal"
	TypeGovernment Type = "government"
	TypeEmployer   Type = "employer"
	TypeUtility    Type = "utility"
	TypeOther      Type = "other"
)

var validTypes = map[Type]bool{
	TypeAccountant: true,
	TypeBank:       true,
	TypeInvestment: true,
	TypeInsurance:  true,
	TypeLegal:      true,
	TypeGovernment: true,
	TypeEmployer:   true,
	TypeUtility:    true,
	TypeOther:      true,
}

// ParseType converts a string to a Type, case-insensitive.
func ParseType(value string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	if !validTypes[t] {
		return "", fmt.Errorf("invalid entity type: %s", value)
	}
	return t, nil
}

// Entity is one record in the entities file.
type Entity struct {
	ID      string            `yaml:"id,omitempty"`
	Name    string            `yaml:"name"`
	Type    Type              `yaml:"type"`
	Contact map[string]string `yaml:"contact,omitempty"`
	Address map[string]string `yaml:"address,omitempty"`
	URL     string            `yaml:"url,omitempty"`
	Notes   string            `yaml:"notes,omitempty"`

	// Email and Phone are accepted as top-level shorthands and folded
	// into the contact map on load.
	Email string `yaml:"email,omitempty"`
	Phone string `yaml:"phone,omitempty"`
}

// Validate checks the record carries a name and a recognized type, and
// folds the email/phone shorthands into the contact map.
func (e *Entity) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("entity name is required")
	}
	t, err := ParseType(string(e.Type))
	if err != nil {
		return err
	}
	e.Type = t

	if e.Contact == nil {
		e.Contact = map[string]string{}
	}
	if e.Address == nil {
		e.Address = map[string]string{}
	}
	if e.Email != "" && e.Contact["email"] == "" {
		e.Contact["email"] = e.Email
	}
	if e.Phone != "" && e.Contact["phone"] == "" {
		e.Contact["phone"] = e.Phone
	}
	e.Email = e.Contact["email"]
	e.Phone = e.Contact["phone"]
	return nil
}

// Format renders an entity for display.
func (e *Entity) Format() string {
	lines := []string{
		fmt.Sprintf("Name: %s", e.Name),
		fmt.Sprintf("Type: %s", e.Type),
	}

	if primary, ok := e.Contact["primary"]; ok {
		lines = append(lines, fmt.Sprintf("Contact: %s", primary))
	}
	if email, ok := e.Contact["email"]; ok && email != "" {
		lines = append(lines, fmt.Sprintf("Email: %s", email))
	}
	if phone, ok := e.Contact["phone"]; ok && phone != "" {
		lines = append(lines, fmt.Sprintf("Phone: %s", phone))
	}

	var addressParts []string
	for _, key := range []string{"street", "city", "postcode", "country"} {
		if part, ok := e.Address[key]; ok {
			addressParts = append(addressParts, part)
		}
	}
	if len(addressParts) > 0 {
		lines = append(lines, "Address:")
		for _, part := range addressParts {
			lines = append(lines, "         "+part)
		}
	}

	if e.URL != "" {
		lines = append(lines, fmt.Sprintf("URL: %s", e.URL))
	}
	if e.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes: %s", e.Notes))
	}

	return strings.Join(lines, "\n")
}
