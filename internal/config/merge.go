package config

// Merge folds an override document into a base document and returns the
// result without mutating either input.
//
// Merge rules, applied recursively:
//   - list values concatenate: base entries first, then override entries,
//     order preserved, duplicates allowed
//   - map values merge key by key, with the override winning on scalar
//     conflicts
//   - any other type mix is overwritten by the override value
//
// Overlapping list keys therefore always grow across merges, never shrink.
func Merge(base, override Document) Document {
	merged := copyMap(base)
	if override != nil {
		recursiveUpdate(merged, override)
	}
	return merged
}

func recursiveUpdate(base, update map[string]any) {
	for key, value := range update {
		switch v := value.(type) {
		case []any:
			existing, ok := base[key]
			if !ok {
				base[key] = copyList(v)
				continue
			}
			if list, isList := existing.([]any); isList {
				base[key] = append(list, copyList(v)...)
			} else {
				base[key] = copyList(v)
			}
		case map[string]any:
			existing, ok := base[key]
			if !ok {
				m := map[string]any{}
				base[key] = m
				recursiveUpdate(m, v)
				continue
			}
			if m, isMap := existing.(map[string]any); isMap {
				recursiveUpdate(m, v)
			} else {
				base[key] = copyMap(v)
			}
		default:
			base[key] = value
		}
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyList(l []any) []any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		return copyList(t)
	default:
		return v
	}
}
