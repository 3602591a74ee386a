package matching

import "strings"

// LicensesCompatible decides whether the candidate's license set satisfies the
// vacancy requirement. Absence of data on either side never blocks. Comparison
// is over upper-cased sets with one subsumption rule: CE satisfies a plain C
// requirement, but C does not satisfy CE. Every other class needs an exact
// member match.
func LicensesCompatible(candidateLicenses, vacancyLicenses []string) bool {
	if len(vacancyLicenses) == 0 || len(candidateLicenses) == 0 {
		return true
	}

	held := make(map[string]struct{}, len(candidateLicenses))
	for _, lic := range candidateLicenses {
		held[strings.ToUpper(strings.TrimSpace(lic))] = struct{}{}
	}

	for _, required := range vacancyLicenses {
		req := strings.ToUpper(strings.TrimSpace(required))
		if _, ok := held[req]; ok {
			return true
		}
		if req == "C" {
			if _, ok := held["CE"]; ok {
				return true
			}
		}
	}

	return false
}
