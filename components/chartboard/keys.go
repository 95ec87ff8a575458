package chartboard

import "sort"

// ExtractKeys discovers every field name reachable in the given records,
// descending into nested mappings and sequences. Scalar and nil leaves
// contribute only the key that points at them. The result is sorted and
// de-duplicated, so identical inputs always yield identical output
// regardless of record ordering.
func ExtractKeys(records []Record) []string {
	seen := map[string]struct{}{}
	for _, record := range records {
		collectKeys(record, seen)
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func collectKeys(v any, seen map[string]struct{}) {
	switch value := v.(type) {
	case map[string]any:
		for key, child := range value {
			seen[key] = struct{}{}
			switch child.(type) {
			case map[string]any, []any, []Record:
				collectKeys(child, seen)
			}
		}
	case []any:
		for _, item := range value {
			collectKeys(item, seen)
		}
	case []Record:
		for _, item := range value {
			collectKeys(item, seen)
		}
	}
}
