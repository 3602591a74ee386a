package matching

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rabotazarulem/driver-matcher/internal/candidate"
	"github.com/rabotazarulem/driver-matcher/internal/vacancy"
)

func intp(v int) *int { return &v }
func floatp(v float64) *float64 { return &v }

func newCandidate(p candidate.Profile) *candidate.Candidate {
	p.Normalize()
	return &candidate.Candidate{ChatName: "test", Profile: p}
}

func newVacancy(r vacancy.Requirements) *vacancy.Vacancy {
	return &vacancy.Vacancy{PageID: "v1", Requirements: r}
}

func TestLicensesCompatible(t *testing.T) {
	cases := []struct {
		name      string
		candidate []string
		vacancy   []string
		want      bool
	}{
		{"CE satisfies C", []string{"CE"}, []string{"C"}, true},
		{"C does not satisfy CE", []string{"C"}, []string{"CE"}, false},
		{"exact match", []string{"B", "C"}, []string{"C"}, true},
		{"no match", []string{"B"}, []string{"D"}, false},
		{"empty requirement", []string{"B"}, nil, true},
		{"empty candidate", nil, []string{"CE"}, true},
		{"case insensitive", []string{"ce"}, []string{"C"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LicensesCompatible(tc.candidate, tc.vacancy); got != tc.want {
				t.Errorf("LicensesCompatible(%v, %v) = %v, want %v", tc.candidate, tc.vacancy, got, tc.want)
			}
		})
	}
}

func TestIsInternational(t *testing.T) {
	cases := []struct {
		name    string
		regions []string
		want    bool
	}{
		{"empty", nil, false},
		{"only Poland", []string{"Польша"}, false},
		{"all of Europe", []string{"По всей Европе"}, true},
		{"two countries", []string{"Германия", "Франция"}, true},
		{"single unknown non-Poland", []string{"Литва"}, false},
		{"UK marker", []string{"Англия"}, true},
		{"multi without markers", []string{"Литва", "Латвия"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsInternational(tc.regions); got != tc.want {
				t.Errorf("IsInternational(%v) = %v, want %v", tc.regions, got, tc.want)
			}
		})
	}
}

func TestMatchBlockerDominance(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus:  "нет",
		LicenseCategories: []string{"CE"},
		PreferredVehicles: []string{"Тент"},
	})
	v := newVacancy(vacancy.Requirements{
		Licenses: []string{"CE"},
		Vehicles: []string{"Тент"},
	})

	result := Match(c, v)

	if !result.Blocked() {
		t.Fatal("expected a blocker for missing work permit")
	}
	if result.Score != 0 {
		t.Errorf("blocked pair must score 0, got %d", result.Score)
	}
	if len(result.Matches) != 0 {
		t.Errorf("blocked pair must carry no positive signal, got %v", result.Matches)
	}
}

func TestMatchWorkPermit(t *testing.T) {
	cases := []struct {
		status      string
		wantBlocked bool
		wantWarning string
	}{
		{"нет", true, ""},
		{"в процессе", true, ""},
		{"", false, "Статус ВНЖ неизвестен"},
		{"есть", false, ""},
	}

	for _, tc := range cases {
		t.Run("status="+tc.status, func(t *testing.T) {
			result := Match(newCandidate(candidate.Profile{WorkPermitStatus: tc.status}), newVacancy(vacancy.Requirements{}))
			if result.Blocked() != tc.wantBlocked {
				t.Errorf("blocked = %v, want %v", result.Blocked(), tc.wantBlocked)
			}
			if tc.wantWarning != "" && !containsString(result.Warnings, tc.wantWarning) {
				t.Errorf("expected warning %q in %v", tc.wantWarning, result.Warnings)
			}
		})
	}
}

func TestMatchLicenseSubsumption(t *testing.T) {
	ce := newCandidate(candidate.Profile{WorkPermitStatus: "есть", LicenseCategories: []string{"CE"}})
	requiresC := newVacancy(vacancy.Requirements{Licenses: []string{"C"}})

	if result := Match(ce, requiresC); result.Blocked() {
		t.Errorf("CE must satisfy a plain C requirement, blockers: %v", result.Blockers)
	}

	cOnly := newCandidate(candidate.Profile{WorkPermitStatus: "есть", LicenseCategories: []string{"C"}})
	requiresCE := newVacancy(vacancy.Requirements{Licenses: []string{"CE"}})

	if result := Match(cOnly, requiresCE); !result.Blocked() {
		t.Error("C must not satisfy a CE requirement")
	}
}

func TestMatchRouteConflictAsymmetry(t *testing.T) {
	domesticOnly := newCandidate(candidate.Profile{
		WorkPermitStatus: "есть",
		RoutePreference:  "внутренние",
	})
	international := newVacancy(vacancy.Requirements{Regions: []string{"Германия", "Франция"}})

	result := Match(domesticOnly, international)
	if !result.Blocked() {
		t.Fatal("domestic-only candidate vs international vacancy must block")
	}

	wantsInternational := newCandidate(candidate.Profile{
		WorkPermitStatus: "есть",
		RoutePreference:  "международные",
	})
	domestic := newVacancy(vacancy.Requirements{Regions: []string{"Польша"}})

	result = Match(wantsInternational, domestic)
	if result.Blocked() {
		t.Errorf("reverse direction must only warn, blockers: %v", result.Blockers)
	}
	if !containsString(result.Warnings, "Кандидат предпочитает международные рейсы, вакансия только по Польше") {
		t.Errorf("expected route warning, got %v", result.Warnings)
	}
}

func TestMatchAvoidedRegions(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus: "есть",
		AvoidedRegions:   []string{"Англия"},
	})
	v := newVacancy(vacancy.Requirements{Regions: []string{"Великобритания"}})

	result := Match(c, v)
	if !result.Blocked() {
		t.Fatal("avoided region overlap must block, aliases included")
	}
	if !strings.Contains(result.Blockers[0], "Англия") {
		t.Errorf("blocker must report the overlapping region: %v", result.Blockers)
	}
}

func TestMatchCitizenshipAsymmetry(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus: "есть",
		Citizenship:      []string{"Россия"},
	})

	excluding := newVacancy(vacancy.Requirements{ExcludedCitizenship: []string{"Россия"}})
	if result := Match(c, excluding); !result.Blocked() {
		t.Error("exclusion list overlap must block")
	}

	including := newVacancy(vacancy.Requirements{AcceptedCitizenship: []string{"Украина"}})
	result := Match(c, including)
	if result.Blocked() {
		t.Errorf("missing the inclusion list must only warn, blockers: %v", result.Blockers)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected an advisory warning for the inclusion list miss")
	}

	unknown := newCandidate(candidate.Profile{WorkPermitStatus: "есть"})
	result = Match(unknown, including)
	if result.Blocked() {
		t.Error("unknown citizenship must not block")
	}
	if !containsAnyWith(result.Warnings, "гражданство кандидата неизвестно") {
		t.Errorf("expected unknown-citizenship warning, got %v", result.Warnings)
	}
}

func TestMatchMandatoryDocuments(t *testing.T) {
	cases := []struct {
		name        string
		status      string
		wantBlocked bool
		wantWarn    bool
	}{
		{"explicit none blocks", "нет", true, false},
		{"pending warns", "в процессе", false, true},
		{"unknown warns", "", false, true},
		{"present is clean", "есть", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCandidate(candidate.Profile{WorkPermitStatus: "есть", ADRStatus: tc.status})
			v := newVacancy(vacancy.Requirements{ADR: "Обязательно"})

			result := Match(c, v)
			if result.Blocked() != tc.wantBlocked {
				t.Errorf("blocked = %v, want %v (blockers %v)", result.Blocked(), tc.wantBlocked, result.Blockers)
			}
			hasADRWarn := containsAnyWith(result.Warnings, "ADR")
			if tc.wantWarn && !hasADRWarn {
				t.Errorf("expected an ADR warning, got %v", result.Warnings)
			}
		})
	}
}

func TestMatchMandatoryPolish(t *testing.T) {
	v := newVacancy(vacancy.Requirements{PolishRequired: "Обязательно"})

	none := newCandidate(candidate.Profile{WorkPermitStatus: "есть", PolishLanguage: "нет"})
	if result := Match(none, v); !result.Blocked() {
		t.Error("mandatory Polish with explicit none must block")
	}

	unknown := newCandidate(candidate.Profile{WorkPermitStatus: "есть"})
	result := Match(unknown, v)
	if result.Blocked() {
		t.Error("unknown Polish level must not block")
	}
	if !containsString(result.Warnings, "Польский обязателен, уровень неизвестен") {
		t.Errorf("expected unknown-level warning, got %v", result.Warnings)
	}
}

func TestMatchEndToEndScenario(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus:  "есть",
		LicenseCategories: []string{"CE"},
		PreferredVehicles: []string{"Тент"},
		ExperienceMonths:  intp(48),
	})
	v := newVacancy(vacancy.Requirements{
		Licenses:            []string{"CE"},
		Vehicles:            []string{"Тент"},
		MinExperienceMonths: 24,
	})

	result := Match(c, v)

	if result.Blocked() {
		t.Fatalf("expected no blockers, got %v", result.Blockers)
	}
	if result.Score < 40 {
		t.Errorf("expected score >= 40 (25 vehicle + 10 experience + 5 license), got %d", result.Score)
	}

	for _, want := range []string{"Тип техники", "Опыт", "Права"} {
		if !containsAnyWith(result.Matches, want) {
			t.Errorf("expected a %q match reason in %v", want, result.Matches)
		}
	}
}

func TestMatchVehicleAliasAgainstCanonicalTag(t *testing.T) {
	c := newCandidate(candidate.Profile{
		PreferredVehicles: []string{"реф"},
	})
	v := newVacancy(vacancy.Requirements{
		Vehicles: []string{"Реф (рефрижератор)"},
	})

	result := Match(c, v)

	if result.Score < weightVehicleOverlap {
		t.Errorf("expected at least the vehicle bonus %d, got %d", weightVehicleOverlap, result.Score)
	}
	if !containsAnyWith(result.Matches, "Тип техники") {
		t.Errorf("expected a vehicle match reason in %v", result.Matches)
	}
}

func TestMatchScoringSignals(t *testing.T) {
	cases := []struct {
		name    string
		profile candidate.Profile
		reqs    vacancy.Requirements
		want    int
	}{
		{
			name:    "crew match",
			profile: candidate.Profile{CrewType: "парный"},
			reqs:    vacancy.Requirements{CrewType: "семейный экипаж"},
			want:    weightCrewMatch,
		},
		{
			name:    "region overlap via alias",
			profile: candidate.Profile{PreferredRegions: []string{"вся Европа"}},
			reqs:    vacancy.Requirements{Regions: []string{"По всей Европе"}},
			want:    weightRegionOverlap,
		},
		{
			name:    "polish preferred and fluent",
			profile: candidate.Profile{PolishLanguage: "свободный"},
			reqs:    vacancy.Requirements{PolishRequired: "Желательно"},
			want:    weightPolishPreferred,
		},
		{
			name:    "polish incidental",
			profile: candidate.Profile{PolishLanguage: "базовый"},
			want:    weightPolishBonus,
		},
		{
			name:    "experience above minimum but below double",
			profile: candidate.Profile{ExperienceMonths: intp(30)},
			reqs:    vacancy.Requirements{MinExperienceMonths: 24},
			want:    weightMinExp,
		},
		{
			name:    "base city substring match",
			profile: candidate.Profile{PreferredBases: []string{"варшав"}},
			reqs:    vacancy.Requirements{BaseCity: "Варшава"},
			want:    weightBaseCity,
		},
		{
			name:    "adr preferred and present",
			profile: candidate.Profile{ADRStatus: "есть"},
			reqs:    vacancy.Requirements{ADR: "Желательно"},
			want:    weightADR,
		},
		{
			name:    "citizenship inclusion",
			profile: candidate.Profile{Citizenship: []string{"Украина"}},
			reqs:    vacancy.Requirements{AcceptedCitizenship: []string{"украина", "Беларусь"}},
			want:    weightCitizenship,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Work permit unknown: warning only, and keeps the docs-ready
			// bonus out of the way so one signal is isolated.
			result := Match(newCandidate(tc.profile), newVacancy(tc.reqs))
			if result.Blocked() {
				t.Fatalf("unexpected blockers: %v", result.Blockers)
			}
			if result.Score != tc.want {
				t.Errorf("score = %d, want %d (matches %v)", result.Score, tc.want, result.Matches)
			}
		})
	}
}

func TestMatchDocsReadyBonus(t *testing.T) {
	c := newCandidate(candidate.Profile{WorkPermitStatus: "есть"})
	result := Match(c, newVacancy(vacancy.Requirements{}))

	if result.Score != weightDocsReady {
		t.Errorf("permit in hand with no mandatory documents must earn the docs bonus, score = %d", result.Score)
	}
	if !containsString(result.Matches, "Документы: готовы") {
		t.Errorf("expected docs-ready reason, got %v", result.Matches)
	}
}

func TestMatchNullNeutrality(t *testing.T) {
	full := candidate.Profile{
		WorkPermitStatus:  "есть",
		LicenseCategories: []string{"CE"},
		PreferredVehicles: []string{"Тент"},
		PreferredRegions:  []string{"Германия"},
		ExperienceMonths:  intp(48),
		PolishLanguage:    "свободный",
		Citizenship:       []string{"Украина"},
	}
	reqs := vacancy.Requirements{
		Licenses:            []string{"CE"},
		Vehicles:            []string{"Тент"},
		Regions:             []string{"Германия"},
		MinExperienceMonths: 24,
	}

	baseline := Match(newCandidate(full), newVacancy(reqs))
	if baseline.Blocked() {
		t.Fatalf("baseline must not block: %v", baseline.Blockers)
	}

	blanks := []func(p *candidate.Profile){
		func(p *candidate.Profile) { p.LicenseCategories = nil },
		func(p *candidate.Profile) { p.PreferredVehicles = nil },
		func(p *candidate.Profile) { p.PreferredRegions = nil },
		func(p *candidate.Profile) { p.ExperienceMonths = nil },
		func(p *candidate.Profile) { p.PolishLanguage = "" },
		func(p *candidate.Profile) { p.Citizenship = nil },
	}

	for i, blank := range blanks {
		p := full
		p.LicenseCategories = append([]string(nil), full.LicenseCategories...)
		p.PreferredVehicles = append([]string(nil), full.PreferredVehicles...)
		p.PreferredRegions = append([]string(nil), full.PreferredRegions...)
		blank(&p)

		result := Match(newCandidate(p), newVacancy(reqs))
		if result.Blocked() {
			t.Errorf("case %d: removing data must never introduce a blocker: %v", i, result.Blockers)
		}
		if result.Score > baseline.Score {
			t.Errorf("case %d: removing data must never increase the score (%d > %d)", i, result.Score, baseline.Score)
		}
	}
}

func TestMatchIdempotent(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus:  "есть",
		LicenseCategories: []string{"CE"},
		PreferredVehicles: []string{"штора"},
		PreferredRegions:  []string{"ЕС"},
		ExperienceMonths:  intp(60),
		CrewType:          "семейный экипаж",
		Citizenship:       []string{"Украина"},
		MinSalaryExpected: floatp(400),
	})
	v := newVacancy(vacancy.Requirements{
		Licenses:            []string{"C"},
		Vehicles:            []string{"Тент"},
		Regions:             []string{"По всей Европе"},
		MinExperienceMonths: 12,
		CrewType:            "парный",
		PaymentType:         vacancy.PaymentDaily,
		MinSalaryNetDaily:   300,
		SalaryCurrency:      "PLN",
	})

	first := Match(c, v)
	second := Match(c, v)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("matcher must be deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMatchSalaryWarningOnlyForDailyRate(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus:  "есть",
		MinSalaryExpected: floatp(400),
	})

	daily := newVacancy(vacancy.Requirements{
		PaymentType:       vacancy.PaymentDaily,
		MinSalaryNetDaily: 300,
		SalaryCurrency:    "PLN",
	})
	result := Match(c, daily)
	if !containsAnyWith(result.Warnings, "Ставка") {
		t.Errorf("expected a low-rate warning for daily pay, got %v", result.Warnings)
	}
	if result.Score != weightDocsReady {
		t.Errorf("salary must never contribute to the score, got %d", result.Score)
	}

	monthly := newVacancy(vacancy.Requirements{
		MinSalaryNet:   3000,
		SalaryCurrency: "PLN",
	})
	result = Match(c, monthly)
	if containsAnyWith(result.Warnings, "Ставка") {
		t.Errorf("monthly vacancies skip the salary comparison, got %v", result.Warnings)
	}
}

func TestMatchDataQualityWarnings(t *testing.T) {
	c := newCandidate(candidate.Profile{
		WorkPermitStatus: "есть",
		PolishLanguage:   "отличный",
	})
	v := &vacancy.Vacancy{
		PageID:       "v1",
		Requirements: vacancy.Requirements{Code95: "Может быть"},
		Warnings:     []string{`неизвестное поле вакансии "Цвет кабины"`},
	}

	result := Match(c, v)
	if result.Blocked() {
		t.Fatalf("data quality issues must not block: %v", result.Blockers)
	}

	if !containsAnyWith(result.Warnings, "Кандидат: polish_language") {
		t.Errorf("expected candidate validation warning, got %v", result.Warnings)
	}
	if !containsAnyWith(result.Warnings, "Вакансия: Код 95") {
		t.Errorf("expected vacancy validation warning, got %v", result.Warnings)
	}
	if !containsAnyWith(result.Warnings, "Цвет кабины") {
		t.Errorf("expected decode warning to be carried through, got %v", result.Warnings)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func containsAnyWith(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
