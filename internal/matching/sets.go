package matching

import "strings"

func lowered(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hasOverlap reports whether the two lists share at least one element under
// the given normalizer. Empty input on either side means no overlap: absence
// of data is never a match.
func hasOverlap(a, b []string, norm func(string) string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if v == "" {
			continue
		}
		seen[norm(v)] = struct{}{}
	}

	for _, v := range a {
		if v == "" {
			continue
		}
		if _, ok := seen[norm(v)]; ok {
			return true
		}
	}
	return false
}

// intersection returns the elements of a whose normalized form also appears
// in b, keeping a's surface form and order, one element per semantic class.
func intersection(a, b []string, norm func(string) string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		if v == "" {
			continue
		}
		inB[norm(v)] = struct{}{}
	}

	var result []string
	taken := make(map[string]struct{})
	for _, v := range a {
		if v == "" {
			continue
		}
		key := norm(v)
		if _, ok := inB[key]; !ok {
			continue
		}
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		result = append(result, v)
	}
	return result
}
