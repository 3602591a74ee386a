package matching

import (
	"fmt"
	"strings"

	"github.com/rabotazarulem/driver-matcher/internal/candidate"
	"github.com/rabotazarulem/driver-matcher/internal/catalog"
	"github.com/rabotazarulem/driver-matcher/internal/vacancy"
)

// Compatibility weights. Points are awarded only for real preference overlap,
// never for unspecified data.
const (
	weightVehicleOverlap  = 25
	weightRegionOverlap   = 20
	weightCrewMatch       = 15
	weightPolishPreferred = 10
	weightPolishBonus     = 5
	weightDoubleExp       = 10
	weightMinExp          = 5
	weightDocsReady       = 10
	weightBaseCity        = 10
	weightLicenseMatch    = 5
	weightCitizenship     = 5
	weightADR             = 5
)

// Match evaluates one candidate profile against one vacancy requirement set.
// Pure and deterministic: it only reads its inputs and allocates a fresh
// result, so concurrent invocations need no coordination.
//
// Phase 1 collects hard blockers in a fixed order; any blocker forces the
// score to zero and suppresses all positive signal, though warnings gathered
// along the way are kept. Phase 2 runs only for unblocked pairs and adds the
// fixed bonus weights.
func Match(c *candidate.Candidate, v *vacancy.Vacancy) Result {
	profile := &c.Profile
	reqs := &v.Requirements

	result := newResult()

	for _, w := range validateProfile(profile) {
		result.Warnings = append(result.Warnings, "Кандидат: "+w)
	}
	for _, w := range validateRequirements(reqs) {
		result.Warnings = append(result.Warnings, "Вакансия: "+w)
	}
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, "Вакансия: "+w)
	}

	// 1. Work permit. Pending counts as blocking: the posting needs someone
	// who can start, not someone waiting on paperwork.
	switch profile.WorkPermitStatus {
	case catalog.StatusNone:
		result.Blockers = append(result.Blockers, "Нет разрешения на работу в Польше")
	case catalog.StatusPending:
		result.Blockers = append(result.Blockers, "ВНЖ/виза в процессе оформления")
	case "":
		result.Warnings = append(result.Warnings, "Статус ВНЖ неизвестен")
	}

	// 2. License classes.
	if len(profile.LicenseCategories) > 0 && len(reqs.Licenses) > 0 {
		if !LicensesCompatible(profile.LicenseCategories, reqs.Licenses) {
			result.Blockers = append(result.Blockers, fmt.Sprintf("Требуется %s, есть %s",
				strings.Join(reqs.Licenses, ", "), strings.Join(profile.LicenseCategories, ", ")))
		}
	}

	// 3. Avoided regions.
	if len(profile.AvoidedRegions) > 0 && len(reqs.Regions) > 0 {
		if overlap := intersection(profile.AvoidedRegions, reqs.Regions, catalog.NormalizeRegion); len(overlap) > 0 {
			result.Blockers = append(result.Blockers,
				"Кандидат не хочет работать в: "+strings.Join(overlap, ", "))
		}
	}

	// 4. Route type. Domestic-only vs an international vacancy blocks; the
	// reverse direction is only advisory.
	if profile.RoutePreference == catalog.RouteDomestic && IsInternational(reqs.Regions) {
		result.Blockers = append(result.Blockers,
			"Кандидат хочет только внутренние рейсы (Польша), вакансия международная")
	} else if profile.RoutePreference == catalog.RouteInternational && len(reqs.Regions) > 0 {
		if len(reqs.Regions) == 1 && lowered(reqs.Regions[0]) == "польша" {
			result.Warnings = append(result.Warnings,
				"Кандидат предпочитает международные рейсы, вакансия только по Польше")
		}
	}

	// 5. Citizenship. The exclusion list is absolute; the inclusion list is
	// advisory only.
	if len(profile.Citizenship) > 0 {
		if len(reqs.AcceptedCitizenship) > 0 && !hasOverlap(profile.Citizenship, reqs.AcceptedCitizenship, lowered) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Гражданство %s не в списке допустимых: %s",
				strings.Join(profile.Citizenship, ", "), strings.Join(reqs.AcceptedCitizenship, ", ")))
		}
		if hasOverlap(profile.Citizenship, reqs.ExcludedCitizenship, lowered) {
			result.Blockers = append(result.Blockers, fmt.Sprintf("Гражданство %s исключено вакансией",
				strings.Join(profile.Citizenship, ", ")))
		}
	} else if len(reqs.AcceptedCitizenship) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Вакансия только для граждан: %s, гражданство кандидата неизвестно",
			strings.Join(reqs.AcceptedCitizenship, ", ")))
	}

	// 6. Mandatory documents. Only an explicit "нет" blocks; pending or
	// unknown stays advisory.
	requireDocument(&result, reqs.Code95, profile.Code95Status,
		"Требуется Код 95, у кандидата нет",
		"Код 95 в процессе получения",
		"Код 95 обязателен, статус неизвестен")
	requireDocument(&result, reqs.ADR, profile.ADRStatus,
		"Требуется ADR, у кандидата нет",
		"ADR в процессе получения",
		"ADR обязателен, статус неизвестен")
	requireDocument(&result, reqs.DriverCard, profile.DriverCardStatus,
		"Требуется карта водителя, у кандидата нет",
		"Карта водителя в процессе получения",
		"Карта водителя обязательна, статус неизвестен")

	// 7. Mandatory Polish.
	if reqs.PolishRequired == catalog.LevelMandatory {
		switch profile.PolishLanguage {
		case catalog.PolishNone:
			result.Blockers = append(result.Blockers, "Требуется польский язык, кандидат не владеет")
		case "":
			result.Warnings = append(result.Warnings, "Польский обязателен, уровень неизвестен")
		}
	}

	if result.Blocked() {
		result.Score = 0
		result.Matches = []string{}
		return result
	}

	// Advisory comparisons that never touch the score.
	if reqs.MinExperienceMonths > 0 {
		switch {
		case profile.ExperienceMonths == nil:
			result.Warnings = append(result.Warnings, fmt.Sprintf("Требуется опыт %d мес., у кандидата неизвестен",
				reqs.MinExperienceMonths))
		case *profile.ExperienceMonths < reqs.MinExperienceMonths:
			result.Warnings = append(result.Warnings, fmt.Sprintf("Опыт %d мес. < требуемых %d мес.",
				*profile.ExperienceMonths, reqs.MinExperienceMonths))
		}
	}

	// Salary is compared only for daily-rate vacancies; monthly postings skip
	// the check entirely, matching the upstream data model.
	if minSalary := reqs.MinSalary(); minSalary != 0 && profile.MinSalaryExpected != nil && *profile.MinSalaryExpected != 0 {
		if reqs.PaymentType == vacancy.PaymentDaily && minSalary < *profile.MinSalaryExpected {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Ставка %g %s/день < ожидания %g",
				minSalary, reqs.SalaryCurrency, *profile.MinSalaryExpected))
		}
	}

	// Scoring: both sides must state a preference before anything counts.

	if hasOverlap(profile.PreferredVehicles, reqs.Vehicles, catalog.NormalizeVehicleType) {
		result.Score += weightVehicleOverlap
		overlap := intersection(profile.PreferredVehicles, reqs.Vehicles, catalog.NormalizeVehicleType)
		result.Matches = append(result.Matches, "Тип техники: "+strings.Join(overlap, ", "))
	}

	if hasOverlap(profile.PreferredRegions, reqs.Regions, catalog.NormalizeRegion) {
		result.Score += weightRegionOverlap
		overlap := intersection(profile.PreferredRegions, reqs.Regions, catalog.NormalizeRegion)
		result.Matches = append(result.Matches, "Регион: "+strings.Join(overlap, ", "))
	}

	candidateCrew := catalog.NormalizeCrewType(profile.CrewType)
	vacancyCrew := catalog.NormalizeCrewType(reqs.CrewType)
	if candidateCrew != "" && candidateCrew == vacancyCrew {
		result.Score += weightCrewMatch
		result.Matches = append(result.Matches, "Экипаж: "+candidateCrew)
	}

	if reqs.PolishRequired == catalog.LevelPreferred && profile.PolishLanguage == catalog.PolishFluent {
		result.Score += weightPolishPreferred
		result.Matches = append(result.Matches, "Польский: свободный")
	} else if reqs.PolishRequired == "" &&
		(profile.PolishLanguage == catalog.PolishFluent || profile.PolishLanguage == catalog.PolishBasic) {
		result.Score += weightPolishBonus
		result.Matches = append(result.Matches, "Польский: "+profile.PolishLanguage)
	}

	if reqs.MinExperienceMonths > 0 && profile.ExperienceMonths != nil && *profile.ExperienceMonths > 0 {
		exp := *profile.ExperienceMonths
		if exp >= reqs.MinExperienceMonths*2 {
			result.Score += weightDoubleExp
			result.Matches = append(result.Matches, fmt.Sprintf("Опыт: %d мес. (в 2+ раза выше)", exp))
		} else if exp >= reqs.MinExperienceMonths {
			result.Score += weightMinExp
			result.Matches = append(result.Matches, fmt.Sprintf("Опыт: %d мес.", exp))
		}
	}

	docsReady := profile.WorkPermitStatus == catalog.StatusHas &&
		(profile.Code95Status == catalog.StatusHas || reqs.Code95 != catalog.LevelMandatory) &&
		(profile.DriverCardStatus == catalog.StatusHas || reqs.DriverCard != catalog.LevelMandatory)
	if docsReady {
		result.Score += weightDocsReady
		result.Matches = append(result.Matches, "Документы: готовы")
	}

	if len(profile.PreferredBases) > 0 && reqs.BaseCity != "" {
		if baseCityMatches(profile.PreferredBases, reqs.BaseCity) {
			result.Score += weightBaseCity
			result.Matches = append(result.Matches, "База: "+reqs.BaseCity)
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Кандидат хочет базу в %s, вакансия в %s",
				strings.Join(profile.PreferredBases, ", "), reqs.BaseCity))
		}
	}

	if len(profile.LicenseCategories) > 0 && len(reqs.Licenses) > 0 &&
		LicensesCompatible(profile.LicenseCategories, reqs.Licenses) {
		result.Score += weightLicenseMatch
		result.Matches = append(result.Matches, "Права: "+strings.Join(profile.LicenseCategories, ", "))
	}

	if hasOverlap(profile.Citizenship, reqs.AcceptedCitizenship, lowered) {
		result.Score += weightCitizenship
		result.Matches = append(result.Matches, "Гражданство: "+strings.Join(profile.Citizenship, ", "))
	}

	if (reqs.ADR == catalog.LevelMandatory || reqs.ADR == catalog.LevelPreferred) &&
		profile.ADRStatus == catalog.StatusHas {
		result.Score += weightADR
		result.Matches = append(result.Matches, "ADR: есть")
	}

	return result
}

// requireDocument applies the mandatory-document rule: explicit "нет" blocks,
// pending and unknown only warn.
func requireDocument(result *Result, required, status, blockMsg, pendingMsg, unknownMsg string) {
	if required != catalog.LevelMandatory {
		return
	}
	switch status {
	case catalog.StatusNone:
		result.Blockers = append(result.Blockers, blockMsg)
	case catalog.StatusPending:
		result.Warnings = append(result.Warnings, pendingMsg)
	case "":
		result.Warnings = append(result.Warnings, unknownMsg)
	}
}

// baseCityMatches reports a case-insensitive substring match in either
// direction between any preferred city and the vacancy's base city.
func baseCityMatches(preferred []string, base string) bool {
	baseLower := strings.ToLower(base)
	for _, city := range preferred {
		cityLower := strings.ToLower(city)
		if cityLower == "" {
			continue
		}
		if strings.Contains(baseLower, cityLower) || strings.Contains(cityLower, baseLower) {
			return true
		}
	}
	return false
}

func validateProfile(p *candidate.Profile) []string {
	var warnings []string

	statusFields := []struct {
		value string
		field string
	}{
		{p.WorkPermitStatus, "work_permit_status"},
		{p.Code95Status, "code_95_status"},
		{p.ADRStatus, "adr_status"},
		{p.DriverCardStatus, "driver_card_status"},
	}
	for _, f := range statusFields {
		if w := catalog.Validate(f.value, catalog.DocumentStatuses, f.field); w != "" {
			warnings = append(warnings, w)
		}
	}

	warnings = append(warnings, catalog.ValidateList(p.LicenseCategories, catalog.LicenseCategories, "license_categories")...)

	if w := catalog.Validate(p.PolishLanguage, catalog.PolishLevels, "polish_language"); w != "" {
		warnings = append(warnings, w)
	}
	if w := catalog.Validate(p.CrewType, catalog.CrewTypes, "crew_type"); w != "" {
		warnings = append(warnings, w)
	}
	if w := catalog.Validate(p.RoutePreference, catalog.RouteTypes, "route_type_preference"); w != "" {
		warnings = append(warnings, w)
	}

	return warnings
}

func validateRequirements(r *vacancy.Requirements) []string {
	var warnings []string

	levelFields := []struct {
		value string
		field string
	}{
		{r.Code95, "Код 95"},
		{r.ADR, "ADR"},
		{r.DriverCard, "Карта водителя"},
		{r.PolishRequired, "Требование польского языка"},
	}
	for _, f := range levelFields {
		if w := catalog.Validate(f.value, catalog.RequirementLevels, f.field); w != "" {
			warnings = append(warnings, w)
		}
	}

	warnings = append(warnings, catalog.ValidateList(r.Licenses, catalog.LicenseCategories, "Категория прав")...)

	if w := catalog.Validate(r.CrewType, catalog.CrewTypes, "Тип экипажа"); w != "" {
		warnings = append(warnings, w)
	}

	warnings = append(warnings, catalog.ValidateList(r.Vehicles, catalog.VehicleTypes, "Тип техники")...)

	return warnings
}
