package catalog

import "strings"

// Canonical region names that alias tables resolve to.
const (
	RegionAllEurope = "По всей Европе"
	RegionPoland    = "Польша"
	RegionUK        = "Великобритания"
)

// Aliases are matched on the lower-cased, trimmed form. Unknown input falls
// through lower-cased so best-effort set comparisons still work.
var vehicleAliases = map[string]string{
	"тент":          "Тент",
	"штора":         "Тент",
	"шторка":        "Тент",
	"firanka":       "Тент",
	"фиранка":       "Тент",
	"реф":           "Реф (рефрижератор)",
	"рефрижератор":  "Реф (рефрижератор)",
	"холодильник":   "Реф (рефрижератор)",
	"chłodnia":      "Реф (рефрижератор)",
	"хладон":        "Реф (рефрижератор)",
	"bdf":           "BDF",
	"бдф":           "BDF",
	"контейнер":     "Контейнеровоз",
	"контейнеровоз": "Контейнеровоз",
	"цистерна":      "Цистерна",
	"бочка":         "Цистерна",
	"мега":          "Мега",
	"mega":          "Мега",
	"платформа":     "Платформа",
	"автовоз":       "Автовоз",
	"бус":           "Бус",
	"bus":           "Бус",
}

// Every canonical vehicle tag resolves to itself, so a value that is already
// canonical normalizes unchanged.
func init() {
	for _, canonical := range VehicleTypes {
		vehicleAliases[strings.ToLower(canonical)] = canonical
	}
}

var regionAliases = map[string]string{
	"по всей европе": RegionAllEurope,
	"вся европа":     RegionAllEurope,
	"по европе":      RegionAllEurope,
	"европа":         RegionAllEurope,
	"ес":             RegionAllEurope,
	"eu":             RegionAllEurope,
	"польша":         RegionPoland,
	"polska":         RegionPoland,
	"англия":         RegionUK,
	"великобритания": RegionUK,
	"uk":             RegionUK,
	"england":        RegionUK,
	"германия":       "Германия",
	"germany":        "Германия",
	"франция":        "Франция",
	"италия":         "Италия",
	"испания":        "Испания",
	"бенилюкс":       "Бенилюкс",
	"скандинавия":    "Скандинавия",
	"швеция":         "Швеция",
	"норвегия":       "Норвегия",
	"финляндия":      "Финляндия",
	"дания":          "Дания",
	"литва":          "Литва",
	"чехия":          "Чехия",
}

var pairedCrewAliases = []string{
	"парный", "пара", "в двойке", "двойка", "вдвоем", "вдвоём",
	"семейный экипаж", "семейный", "муж и жена", "экипаж",
}

var soloCrewAliases = []string{"соло", "один", "одиночный", "сам"}

// NormalizeVehicleType maps a free-form vehicle term to its canonical tag.
// Already-canonical values come back unchanged; unrecognized input is returned
// lower-cased and trimmed.
func NormalizeVehicleType(s string) string {
	trimmed := strings.TrimSpace(s)
	if canonical, ok := vehicleAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return strings.ToLower(trimmed)
}

// NormalizeRegion maps region aliases to canonical country or area names.
// An all-of-Europe alias resolves to its own canonical value, distinct from
// any single country.
func NormalizeRegion(s string) string {
	trimmed := strings.TrimSpace(s)
	if canonical, ok := regionAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return strings.ToLower(trimmed)
}

// NormalizeCrewType resolves crew arrangement phrasings to парный or соло.
// Anything not recognized as either returns the empty string.
func NormalizeCrewType(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return ""
	}
	for _, alias := range pairedCrewAliases {
		if strings.Contains(lower, alias) {
			return CrewPaired
		}
	}
	for _, alias := range soloCrewAliases {
		if lower == alias {
			return CrewSolo
		}
	}
	return ""
}
