package recommendations

import "strings"

// Generate builds the deterministic recommendation list for the given risk
// levels. Category order is fixed: timeline, then budget, then resource. When
// no category is elevated the single fallback recommendation is returned.
func Generate(input Input) []string {
	out := make([]string, 0, 9)
	mappers := []func(Input) []string{
		fromTimeline,
		fromBudget,
		fromResource,
	}
	for _, mapper := range mappers {
		out = append(out, mapper(input)...)
	}

	out = dedupe(out)
	if len(out) == 0 {
		return []string{Fallback}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}
