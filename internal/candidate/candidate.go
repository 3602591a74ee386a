// Package candidate defines the structured candidate profile produced by the
// transcript analysis step and the file store it is loaded from.
package candidate

import (
	"fmt"
	"strings"
)

// Checklist tracks the five funnel stages of the manager's work with a lead.
// The matcher does not consume it; it is carried through to the report.
type Checklist struct {
	HasWorkPermitInPoland bool `json:"has_work_permit_in_poland"`
	PreferencesProvided   bool `json:"preferences_provided"`
	VacancyOffered        bool `json:"vacancy_offered"`
	VacancyAccepted       bool `json:"vacancy_accepted"`
	ExternalContactShared bool `json:"external_contact_shared"`
}

// Profile is the structured candidate record extracted from a chat transcript.
// Enum scalars use the empty string for "unknown"; that is different from an
// explicit "нет" and the matcher branches on the two separately. List fields
// are never nil after loading: an empty list means "no preference stated".
type Profile struct {
	WorkPermitStatus  string   `json:"work_permit_status"`
	Code95Status      string   `json:"code_95_status"`
	ADRStatus         string   `json:"adr_status"`
	DriverCardStatus  string   `json:"driver_card_status"`
	LicenseCategories []string `json:"license_categories"`
	ExperienceMonths  *int     `json:"experience_months"`
	PolishLanguage    string   `json:"polish_language"`
	CrewType          string   `json:"crew_type"`
	PreferredVehicles []string `json:"preferred_vehicle_types"`
	PreferredRegions  []string `json:"preferred_regions"`
	RoutePreference   string   `json:"route_type_preference"`
	AvoidedRegions    []string `json:"avoided_regions"`
	PreferredBases    []string `json:"preferred_base_cities"`
	MinSalaryExpected *float64 `json:"min_salary_expectation"`
	Citizenship       []string `json:"citizenship"`
}

// Candidate is one analyzed chat: identity, funnel checklist and the profile.
type Candidate struct {
	ChatName      string    `json:"chatName"`
	FileName      string    `json:"fileName"`
	MessagesCount int       `json:"messagesCount"`
	Checklist     Checklist `json:"checklist"`
	Profile       Profile   `json:"profile"`
}

// Normalize replaces nil list fields with empty slices so downstream code can
// rely on the null/empty distinction: a missing list is the same as an empty
// one, while a missing scalar stays unknown.
func (p *Profile) Normalize() {
	if p.LicenseCategories == nil {
		p.LicenseCategories = []string{}
	}
	if p.PreferredVehicles == nil {
		p.PreferredVehicles = []string{}
	}
	if p.PreferredRegions == nil {
		p.PreferredRegions = []string{}
	}
	if p.AvoidedRegions == nil {
		p.AvoidedRegions = []string{}
	}
	if p.PreferredBases == nil {
		p.PreferredBases = []string{}
	}
	if p.Citizenship == nil {
		p.Citizenship = []string{}
	}
}

// Summary renders the short human-readable profile line used in reports.
func (p *Profile) Summary() string {
	var parts []string

	if len(p.LicenseCategories) > 0 {
		parts = append(parts, strings.Join(p.LicenseCategories, ", "))
	}

	if p.ExperienceMonths != nil && *p.ExperienceMonths > 0 {
		months := *p.ExperienceMonths
		if months >= 12 {
			parts = append(parts, fmt.Sprintf("%d лет опыта", months/12))
		} else {
			parts = append(parts, fmt.Sprintf("%d мес. опыта", months))
		}
	}

	if p.CrewType != "" {
		parts = append(parts, p.CrewType)
	}

	if len(p.Citizenship) > 0 {
		parts = append(parts, strings.Join(p.Citizenship, ", "))
	}

	if len(parts) == 0 {
		return "профиль не заполнен"
	}
	return strings.Join(parts, ", ")
}
