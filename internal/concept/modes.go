package concept

import "sort"

// mergeModeNames returns the sorted, deduplicated union of existing and add.
func mergeModeNames(existing []string, add []Mode) []string {
	set := make(map[string]struct{}, len(existing)+len(add))
	for _, m := range existing {
		set[m] = struct{}{}
	}
	for _, m := range add {
		set[m.String()] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
