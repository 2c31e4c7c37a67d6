package config

// Regions recognized under the investment and bank sections, in the fixed
// order consumers iterate them.
var Regions = []string{"uk", "us"}

// NormalizeRegions repairs legacy shapes in the investment and bank
// sections in place. The configuration format evolved from bare lists of
// account names to structured records; both shapes must be accepted.
//
//   - a bare string region value becomes a single-element list holding
//     {name: <string>, patterns: []}
//   - bare strings inside a region list are replaced in place by the same
//     record shape
//
// Already-normalized structures pass through untouched, so the operation is
// idempotent. No other sections receive this treatment.
func NormalizeRegions(cfg Document) {
	for _, category := range []string{"investment", "bank"} {
		section, ok := cfg[category].(map[string]any)
		if !ok {
			continue
		}
		for _, region := range Regions {
			switch v := section[region].(type) {
			case string:
				section[region] = []any{stringRecord(v)}
			case []any:
				for i, item := range v {
					if s, isStr := item.(string); isStr {
						v[i] = stringRecord(s)
					}
				}
			}
		}
	}
}

func stringRecord(name string) map[string]any {
	return map[string]any{"name": name, "patterns": []any{}}
}
