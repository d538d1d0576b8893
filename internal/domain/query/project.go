package query

import "encoding/json"

// Project restricts each item to the selected top-level JSON fields.
// The id is always kept. With no selection the items are returned as-is.
func Project[T any](items []T, fields []string) ([]any, error) {
	out := make([]any, 0, len(items))
	if len(fields) == 0 {
		for _, it := range items {
			out = append(out, it)
		}
		return out, nil
	}
	keep := map[string]struct{}{"id": {}}
	for _, f := range fields {
		keep[f] = struct{}{}
	}
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		for k := range m {
			if _, ok := keep[k]; !ok {
				delete(m, k)
			}
		}
		out = append(out, m)
	}
	return out, nil
}
