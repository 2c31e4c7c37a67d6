package config

import (
	"reflect"
	"testing"
)

// TestMergeListConcatenation verifies shared list keys concatenate with base
// entries first and no deduplication
func TestMergeListConcatenation(t *testing.T) {
	base := Document{
		"additional": []any{"a", "b"},
	}
	override := Document{
		"additional": []any{"b", "c"},
	}

	merged := Merge(base, override)

	got, ok := merged["additional"].([]any)
	if !ok {
		t.Fatalf("additional is %T, want []any", merged["additional"])
	}
	want := []any{"a", "b", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged list = %v, want %v", got, want)
	}
	if len(got) != len(base["additional"].([]any))+len(override["additional"].([]any)) {
		t.Error("merged list length must equal sum of input lengths")
	}
}

// TestMergeRecursesDicts verifies nested maps merge key by key with the
// override winning on scalar conflicts
func TestMergeRecursesDicts(t *testing.T) {
	base := Document{
		"bank": map[string]any{
			"uk": []any{map[string]any{"id": "hsbc"}},
			"defaults": map[string]any{
				"frequency": "monthly",
				"region":    "uk",
			},
		},
	}
	override := Document{
		"bank": map[string]any{
			"uk": []any{map[string]any{"id": "barclays"}},
			"defaults": map[string]any{
				"frequency": "quarterly",
			},
		},
	}

	merged := Merge(base, override)

	bank := merged["bank"].(map[string]any)
	uk := bank["uk"].([]any)
	if len(uk) != 2 {
		t.Fatalf("bank.uk has %d entries, want 2", len(uk))
	}
	if uk[0].(map[string]any)["id"] != "hsbc" {
		t.Error("base list entries must come first")
	}

	defaults := bank["defaults"].(map[string]any)
	if defaults["frequency"] != "quarterly" {
		t.Errorf("frequency = %v, want quarterly (override wins)", defaults["frequency"])
	}
	if defaults["region"] != "uk" {
		t.Errorf("region = %v, want uk (base preserved)", defaults["region"])
	}
}

// TestMergeScalarOverwrite verifies scalars and mismatched types are
// overwritten by the override value
func TestMergeScalarOverwrite(t *testing.T) {
	base := Document{
		"version": 1,
		"name":    "base",
		"mixed":   "scalar",
	}
	override := Document{
		"version": 2,
		"mixed":   []any{"now-a-list"},
	}

	merged := Merge(base, override)

	if merged["version"] != 2 {
		t.Errorf("version = %v, want 2", merged["version"])
	}
	if merged["name"] != "base" {
		t.Errorf("name = %v, want base", merged["name"])
	}
	if _, ok := merged["mixed"].([]any); !ok {
		t.Errorf("mixed = %T, want list (type mix overwritten)", merged["mixed"])
	}
}

// TestMergeDoesNotMutateInputs verifies Merge is pure
func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Document{"items": []any{"a"}}
	override := Document{"items": []any{"b"}}

	Merge(base, override)

	if len(base["items"].([]any)) != 1 {
		t.Error("base document was mutated")
	}
	if len(override["items"].([]any)) != 1 {
		t.Error("override document was mutated")
	}
}

// TestMergeNilOverride verifies an absent override leaves the base intact
func TestMergeNilOverride(t *testing.T) {
	base := Document{"employment": []any{"x"}}

	merged := Merge(base, nil)

	if !reflect.DeepEqual(merged, base) {
		t.Errorf("merged = %v, want copy of base", merged)
	}
}

// TestNormalizeRegions verifies legacy string shapes are promoted to records
func TestNormalizeRegions(t *testing.T) {
	cfg := Document{
		"investment": map[string]any{
			"uk": "legacy-broker",
			"us": []any{"vanguard", map[string]any{"id": "fidelity", "patterns": []any{"x"}}},
		},
		"bank": map[string]any{
			"uk": []any{"hsbc"},
		},
		"employment": "untouched",
	}

	NormalizeRegions(cfg)

	uk := cfg["investment"].(map[string]any)["uk"].([]any)
	if len(uk) != 1 {
		t.Fatalf("investment.uk has %d entries, want 1", len(uk))
	}
	rec := uk[0].(map[string]any)
	if rec["name"] != "legacy-broker" {
		t.Errorf("name = %v, want legacy-broker", rec["name"])
	}
	if len(rec["patterns"].([]any)) != 0 {
		t.Error("promoted record must carry an empty patterns list")
	}

	us := cfg["investment"].(map[string]any)["us"].([]any)
	if us[0].(map[string]any)["name"] != "vanguard" {
		t.Error("bare string inside list must be promoted in place")
	}
	if us[1].(map[string]any)["id"] != "fidelity" {
		t.Error("structured records must pass through untouched")
	}

	if cfg["employment"] != "untouched" {
		t.Error("sections other than investment/bank must not be normalized")
	}
}

// TestNormalizeRegionsIdempotent verifies normalizing twice is a no-op
func TestNormalizeRegionsIdempotent(t *testing.T) {
	cfg := Document{
		"bank": map[string]any{
			"uk": "hsbc",
		},
	}

	NormalizeRegions(cfg)
	first := copyMap(cfg)
	NormalizeRegions(cfg)

	if !reflect.DeepEqual(cfg, Document(first)) {
		t.Errorf("second normalization changed the document: %v vs %v", cfg, first)
	}
}
