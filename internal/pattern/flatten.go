package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/finx/internal/logger"
)

// EntityResolver resolves display names and source URLs for entity
// identifiers. The entities file is optional, so implementations must
// tolerate unknown ids by returning "".
type EntityResolver interface {
	EntityName(id string) string
	EntityURL(id string) string
}

// flattener carries the state of one Flatten run.
type flattener struct {
	catalog  Catalog
	entities EntityResolver
	log      *logger.ConsoleLogger
}

// Flatten walks a merged configuration document and produces the pattern
// catalog. All six fixed categories are present in the result regardless of
// configuration content. Entries without a resolvable document id are
// skipped with a warning; records with nil or empty pattern lists
// contribute nothing. Entity-sourced URLs take precedence over inline url
// fields.
func Flatten(cfg map[string]any, entities EntityResolver, log *logger.ConsoleLogger) Catalog {
	if log == nil {
		log = logger.Discard()
	}
	f := &flattener{
		catalog:  NewCatalog(),
		entities: entities,
		log:      log,
	}
	if len(cfg) == 0 {
		f.log.Debugf("no configuration to flatten, returning empty catalog")
		return f.catalog
	}

	f.flattenEmployment(cfg["employment"])
	f.flattenRegional(cfg["investment"], "investment")
	f.flattenRegional(cfg["bank"], "bank")
	f.flattenAdditional(cfg["additional"])

	return f.catalog
}

// defaultFrequency returns the category default used when a record states
// no frequency of its own.
func defaultFrequency(category string) string {
	switch category {
	case "employment", "bank_uk", "bank_us":
		return "monthly"
	}
	return "yearly"
}

// add processes one patterns-list element against its owning record and
// appends the resulting entry to the category.
func (f *flattener) add(raw any, info map[string]any, category string) {
	spec := DecodeSpec(raw)
	if spec == nil {
		return
	}

	docID := stringField(info, "id")
	if docID == "" {
		f.log.Warnf("missing document id for pattern %v in %s, skipping", raw, category)
		return
	}

	entityID := stringField(info, "entity_id")
	if entityID == "" {
		entityID = docID
	}

	entry := Entry{
		Pattern:       spec.Expression(),
		ID:            docID,
		EntityID:      entityID,
		Name:          stringField(info, "name"),
		Frequency:     stringField(info, "frequency"),
		StartDate:     stringField(info, "start_date"),
		EndDate:       stringField(info, "end_date"),
		AnnualDocType: stringField(info, "annual_document_type"),
	}
	if entry.Frequency == "" {
		entry.Frequency = defaultFrequency(category)
	}

	// Template-level validity bounds beat record-level bounds.
	if t, ok := spec.(TemplateSpec); ok {
		if t.StartDate != "" {
			entry.StartDate = t.StartDate
		}
		if t.EndDate != "" {
			entry.EndDate = t.EndDate
		}
	}

	if url := f.entityURL(entityID); url != "" {
		entry.URL = url
	} else {
		entry.URL = stringField(info, "url")
	}

	f.catalog[category] = append(f.catalog[category], entry)
}

func (f *flattener) entityURL(id string) string {
	if f.entities == nil {
		return ""
	}
	return f.entities.EntityURL(id)
}

func (f *flattener) entityName(id string) string {
	if f.entities == nil {
		return ""
	}
	return f.entities.EntityName(id)
}

// flattenEmployment accepts the flat list form or the legacy mapping of
// sub-category name to employer list; the legacy form is flattened by
// concatenating every sub-category's entries.
func (f *flattener) flattenEmployment(section any) {
	switch s := section.(type) {
	case []any:
		for _, item := range s {
			employer, ok := item.(map[string]any)
			if !ok {
				continue
			}
			f.addRecord(employer, "employment")
		}
	case map[string]any:
		f.log.Debugf("flattening legacy categorized employment structure")
		for _, key := range sortedKeys(s) {
			employers, ok := s[key].([]any)
			if !ok {
				if single, isMap := s[key].(map[string]any); isMap {
					employers = []any{single}
				} else {
					continue
				}
			}
			for _, item := range employers {
				if employer, isMap := item.(map[string]any); isMap {
					f.addRecord(employer, "employment")
				}
			}
		}
	}
}

// addRecord handles the single "pattern" shortcut field and the "patterns"
// list on one record.
func (f *flattener) addRecord(record map[string]any, category string) {
	if p, ok := record["pattern"]; ok {
		f.add(p, record, category)
		return
	}
	patterns, _ := record["patterns"].([]any)
	for _, p := range patterns {
		f.add(p, record, category)
	}
}

// flattenRegional handles the investment and bank sections, iterating the
// uk and us regions in fixed order.
func (f *flattener) flattenRegional(section any, kind string) {
	regions, ok := section.(map[string]any)
	if !ok {
		return
	}
	for _, region := range []string{"uk", "us"} {
		category := fmt.Sprintf("%s_%s", kind, region)
		accounts, isList := regions[region].([]any)
		if !isList {
			continue
		}
		for _, item := range accounts {
			switch account := item.(type) {
			case string:
				// Bare string accounts are accepted verbatim when a
				// config is injected without region normalization.
				f.catalog[category] = append(f.catalog[category], Entry{
					Pattern:   account,
					ID:        category,
					EntityID:  category,
					Frequency: defaultFrequency(category),
				})
			case map[string]any:
				if kind == "bank" {
					f.addBank(account, category)
				} else {
					f.addRecord(account, category)
				}
			}
		}
	}
}

// addBank handles one bank record, expanding account_types sub-lists into
// independent entries with bank-level fallbacks for frequency, validity
// bounds, and entity id.
func (f *flattener) addBank(bank map[string]any, category string) {
	accountTypes, hasTypes := bank["account_types"].([]any)
	if !hasTypes {
		f.addRecord(bank, category)
		return
	}

	for _, item := range accountTypes {
		accountType, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if stringField(accountType, "id") == "" {
			f.log.Errorf("missing id in account_type for bank %s", stringField(bank, "id"))
			continue
		}
		patterns, _ := accountType["patterns"].([]any)
		if len(patterns) == 0 {
			continue
		}

		entityID := stringField(accountType, "entity_id")
		if entityID == "" {
			entityID = stringField(bank, "entity_id")
		}
		if entityID == "" {
			entityID = stringField(bank, "id")
		}

		bankName := f.entityName(entityID)
		if bankName == "" {
			bankName = stringField(bank, "name")
		}
		if bankName == "" {
			bankName = "Bank"
		}
		accountName := stringField(accountType, "name")
		if accountName == "" {
			accountName = "Account"
		}

		combined := map[string]any{
			"id":        accountType["id"],
			"entity_id": entityID,
			"name":      bankName + " - " + accountName,
		}
		copyFallback(combined, "frequency", accountType, bank)
		copyFallback(combined, "start_date", accountType, bank)
		copyFallback(combined, "end_date", accountType, bank)
		copyFallback(combined, "annual_document_type", accountType, bank)
		if url := f.entityURL(entityID); url != "" {
			combined["url"] = url
		} else {
			copyFallback(combined, "url", accountType, bank)
		}

		for _, p := range patterns {
			f.add(p, combined, category)
		}
	}
}

// copyFallback copies key from primary, falling back to secondary.
func copyFallback(dst map[string]any, key string, primary, secondary map[string]any) {
	if v := stringField(primary, key); v != "" {
		dst[key] = v
		return
	}
	if v := stringField(secondary, key); v != "" {
		dst[key] = v
	}
}

// flattenAdditional accepts the flat list form or the legacy mapping keyed
// by document-type name under additional.patterns.
func (f *flattener) flattenAdditional(section any) {
	switch s := section.(type) {
	case map[string]any:
		patterns, ok := s["patterns"].(map[string]any)
		if !ok {
			return
		}
		for _, name := range sortedKeys(patterns) {
			info, isMap := patterns[name].(map[string]any)
			if !isMap {
				continue
			}
			record := copyRecord(info)
			record["name"] = name
			if stringField(record, "id") == "" {
				record["id"] = strings.ReplaceAll(name, "_", "-")
			}

			if base := stringField(record, "base"); base != "" {
				entry := Entry{
					Pattern:   Build(base, "", "", nil),
					ID:        stringField(record, "id"),
					EntityID:  stringField(record, "id"),
					Name:      name,
					Frequency: stringField(record, "frequency"),
				}
				if entry.Frequency == "" {
					entry.Frequency = "yearly"
				}
				f.catalog["additional"] = append(f.catalog["additional"], entry)
				continue
			}
			// A full pattern structure doubles as its own record.
			f.add(record, record, "additional")
		}
	case []any:
		for _, item := range s {
			switch v := item.(type) {
			case string:
				f.catalog["additional"] = append(f.catalog["additional"], Entry{
					Pattern:   v,
					ID:        "additional",
					EntityID:  "additional",
					Frequency: "yearly",
				})
			case map[string]any:
				f.addRecord(v, "additional")
			}
		}
	}
}

func copyRecord(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
