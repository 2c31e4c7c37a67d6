package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEntities(t *testing.T, base string) {
	t.Helper()
	entities := `entities:
  - id: acme-corp
    name: Acme Corp
    type: employer
    url: https://payroll.acme.example
  - id: first-bank
    name: First Bank
    type: bank
`
	if err := os.WriteFile(filepath.Join(base, "finx_entities.yml"), []byte(entities), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestEntitiesCommand_List(t *testing.T) {
	base := t.TempDir()
	writeEntities(t, base)

	output, err := runRoot(t, "entities", "--base-path", base)

	if err != nil {
		t.Fatalf("entities returned error: %v", err)
	}
	if !strings.Contains(output, "Acme Corp") || !strings.Contains(output, "First Bank") {
		t.Errorf("expected both entities, got: %s", output)
	}
	if !strings.Contains(output, "2 entities") {
		t.Errorf("expected count line, got: %s", output)
	}
}

func TestEntitiesCommand_TypeFilter(t *testing.T) {
	base := t.TempDir()
	writeEntities(t, base)

	output, err := runRoot(t, "entities", "--base-path", base, "--type", "bank")

	if err != nil {
		t.Fatalf("entities returned error: %v", err)
	}
	if !strings.Contains(output, "First Bank") {
		t.Errorf("expected bank entity, got: %s", output)
	}
	if strings.Contains(output, "Acme Corp") {
		t.Errorf("employer must be filtered out, got: %s", output)
	}
}

func TestEntitiesCommand_InvalidType(t *testing.T) {
	base := t.TempDir()
	writeEntities(t, base)

	if _, err := runRoot(t, "entities", "--base-path", base, "--type", "spaceship"); err == nil {
		t.Error("invalid type must be rejected")
	}
}

func TestEntitiesCommand_Empty(t *testing.T) {
	base := t.TempDir()

	output, err := runRoot(t, "entities", "--base-path", base)

	if err != nil {
		t.Fatalf("entities returned error: %v", err)
	}
	if !strings.Contains(output, "No entities found.") {
		t.Errorf("expected empty message, got: %s", output)
	}
}

func TestValidateEntitiesCommand(t *testing.T) {
	base := t.TempDir()
	writeEntities(t, base)
	config := `employment:
  - id: acme
    name: Acme Corp
    entity_id: acme-corp
    frequency: monthly
    patterns:
      - acme
`
	if err := os.WriteFile(filepath.Join(base, "finx_base.yml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := runRoot(t, "validate-entities", "--base-path", base)

	if err != nil {
		t.Fatalf("validate-entities returned error: %v", err)
	}
	if !strings.Contains(output, "All entity references are valid.") {
		t.Errorf("expected success message, got: %s", output)
	}
}

func TestValidateEntitiesCommand_Dangling(t *testing.T) {
	base := t.TempDir()
	writeEntities(t, base)
	config := `employment:
  - id: acme
    name: Acme Corp
    entity_id: ghost-corp
    frequency: monthly
    patterns:
      - acme
`
	if err := os.WriteFile(filepath.Join(base, "finx_base.yml"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runRoot(t, "validate-entities", "--base-path", base); err == nil {
		t.Error("dangling entity reference must fail validation")
	}
}
