package matching

import "strings"

// Substrings that mark a region list as cross-border: pan-European terms,
// named Western-European countries, the UK.
var internationalMarkers = []string{
	"по всей европе", "европа", "ес", "eu", "вся европа",
	"великобритания", "uk", "англия",
	"германия", "франция", "италия", "испания", "бенилюкс",
	"скандинавия", "швеция", "норвегия", "финляндия", "дания",
}

// IsInternational classifies a vacancy's region list. An empty list is not
// international (absence of data never blocks). Exactly Poland is domestic.
// Any marker hit or more than one listed region means international; a single
// unrecognized non-Poland region stays domestic as the conservative default.
func IsInternational(regions []string) bool {
	var lower []string
	for _, r := range regions {
		if r == "" {
			continue
		}
		lower = append(lower, strings.ToLower(r))
	}

	if len(lower) == 0 {
		return false
	}

	if len(lower) == 1 && lower[0] == "польша" {
		return false
	}

	for _, region := range lower {
		for _, marker := range internationalMarkers {
			if strings.Contains(region, marker) {
				return true
			}
		}
	}

	return len(lower) > 1
}
