package catalog

import "fmt"

// Validate checks a scalar value against its vocabulary. Empty values count as
// unknown and are fine. The value is never rejected or altered: a value outside
// the vocabulary only yields a warning, so a noisy upstream classifier degrades
// the result instead of halting the run.
func Validate(value string, allowed []string, field string) string {
	if value == "" {
		return ""
	}
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return fmt.Sprintf("%s: недопустимое значение %q (ожидается одно из %v)", field, value, allowed)
}

// ValidateList applies Validate element-wise and collects the warnings.
func ValidateList(values []string, allowed []string, field string) []string {
	var warnings []string
	for _, v := range values {
		if w := Validate(v, allowed, field); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}
