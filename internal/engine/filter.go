package engine

import "sort"

// FilterCountries returns the rows whose country name is in selected.
// An empty selection selects nothing. The result is a fresh slice.
func FilterCountries(rows []Record, selected []string) []Record {
	want := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		want[c] = struct{}{}
	}

	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		if _, ok := want[r.CountryName]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Countries lists the distinct country names in rows, sorted.
func Countries(rows []Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.CountryName]; ok {
			continue
		}
		seen[r.CountryName] = struct{}{}
		out = append(out, r.CountryName)
	}
	sort.Strings(out)
	return out
}
