// Package catalog holds the categorical vocabularies shared between candidate
// profiles and vacancy requirements, the alias tables that collapse free-form
// surface forms into canonical values, and the advisory validation helpers.
package catalog

// Document statuses as the candidate states them.
const (
	StatusHas     = "есть"
	StatusPending = "в процессе"
	StatusNone    = "нет"
)

// Vacancy-side requirement levels.
const (
	LevelMandatory = "Обязательно"
	LevelPreferred = "Желательно"
)

// Crew arrangements.
const (
	CrewPaired = "парный"
	CrewSolo   = "соло"
)

// Polish language levels on the candidate side.
const (
	PolishFluent = "свободный"
	PolishBasic  = "базовый"
	PolishNone   = "нет"
)

// Route type preferences.
const (
	RouteDomestic      = "внутренние"
	RouteInternational = "международные"
)

var (
	// LicenseCategories are the recognized driving license classes, always
	// stored upper-cased in latin letters.
	LicenseCategories = []string{"B", "C", "C1", "C1E", "CE", "D", "DE"}

	// DocumentStatuses applies to work permit, code 95, ADR and driver card.
	DocumentStatuses = []string{StatusHas, StatusPending, StatusNone}

	// RequirementLevels covers the vacancy-side document and language demands.
	RequirementLevels = []string{LevelMandatory, LevelPreferred}

	CrewTypes = []string{CrewPaired, CrewSolo}

	PolishLevels = []string{PolishFluent, PolishBasic, PolishNone}

	// VehicleTypes are the canonical vehicle tags used in patches and profiles.
	VehicleTypes = []string{
		"Тент",
		"Реф (рефрижератор)",
		"BDF",
		"Контейнеровоз",
		"Цистерна",
		"Мега",
		"Платформа",
		"Автовоз",
		"Бус",
	}

	RouteTypes = []string{RouteDomestic, RouteInternational}
)
