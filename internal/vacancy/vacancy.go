// Package vacancy defines the typed vacancy requirement record and the
// patch-file store it is loaded from.
package vacancy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Lifecycle statuses tracked in the external status index.
const (
	StatusPublished = "Опубликовано"
	StatusClosed    = "Закрыто"
)

// PaymentDaily marks a daily-rate vacancy; only those participate in the
// salary expectation comparison.
const PaymentDaily = "Поденная"

// Requirements is the vacancy requirement set. Patch documents carry these as
// a flat property map keyed by the human-readable field names; decoding into a
// fixed record keeps the recognized key set explicit and surfaces anything
// unexpected as a warning instead of passing it through silently.
type Requirements struct {
	Licenses            []string `mapstructure:"Категория прав"`
	Vehicles            []string `mapstructure:"Тип техники"`
	Regions             []string `mapstructure:"Регионы работы"`
	BaseCity            string   `mapstructure:"Город базы"`
	MinExperienceMonths int      `mapstructure:"Минимальный опыт (месяцы)"`
	Code95              string   `mapstructure:"Код 95"`
	ADR                 string   `mapstructure:"ADR"`
	DriverCard          string   `mapstructure:"Карта водителя"`
	PolishRequired      string   `mapstructure:"Требование польского языка"`
	CrewType            string   `mapstructure:"Тип экипажа"`
	MinSalaryNet        float64  `mapstructure:"Минимальная зарплата (нетто)"`
	MinSalaryNetDaily   float64  `mapstructure:"Минимальная зарплата (нетто, /день)"`
	MaxSalaryNetDaily   float64  `mapstructure:"Максимальная зарплата (нетто, /день)"`
	SalaryCurrency      string   `mapstructure:"Валюта зарплаты"`
	PaymentType         string   `mapstructure:"Тип оплаты"`
	ContractType        string   `mapstructure:"Тип договора"`
	Schedule            string   `mapstructure:"График работы"`
	AcceptedCitizenship []string `mapstructure:"Допустимое гражданство"`
	ExcludedCitizenship []string `mapstructure:"Исключённое гражданство"`
}

// MinSalary returns the minimum offered rate regardless of which salary key
// variant the patch used.
func (r *Requirements) MinSalary() float64 {
	if r.MinSalaryNet != 0 {
		return r.MinSalaryNet
	}
	return r.MinSalaryNetDaily
}

// Vacancy is one posting: identity, source file, externally-joined lifecycle
// status and the typed requirement set. Warnings collects data-quality notes
// discovered while decoding (unrecognized property keys).
type Vacancy struct {
	PageID       string
	File         string
	Status       string
	Requirements Requirements
	Warnings     []string
}

// DecodeRequirements converts a raw property map into the typed record.
// Unrecognized keys are tolerated and reported back as warnings.
func DecodeRequirements(props map[string]any) (Requirements, []string, error) {
	var reqs Requirements
	var meta mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &reqs,
		Metadata:         &meta,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return reqs, nil, fmt.Errorf("build properties decoder: %w", err)
	}

	if err := decoder.Decode(props); err != nil {
		return reqs, nil, fmt.Errorf("decode vacancy properties: %w", err)
	}

	var warnings []string
	sort.Strings(meta.Unused)
	for _, key := range meta.Unused {
		warnings = append(warnings, fmt.Sprintf("неизвестное поле вакансии %q", key))
	}

	return reqs, warnings, nil
}

// Name derives a human-readable vacancy label from its requirements: base
// city, license classes and the offered rate. Falls back to the page id when
// nothing is filled in.
func (v *Vacancy) Name() string {
	var parts []string

	if v.Requirements.BaseCity != "" {
		parts = append(parts, v.Requirements.BaseCity)
	}

	if len(v.Requirements.Licenses) > 0 {
		parts = append(parts, strings.Join(v.Requirements.Licenses, ", "))
	}

	if salary := v.Requirements.MinSalary(); salary != 0 {
		unit := "/мес"
		if v.Requirements.PaymentType == PaymentDaily {
			unit = "/день"
		}
		parts = append(parts, fmt.Sprintf("%g %s%s", salary, v.Requirements.SalaryCurrency, unit))
	}

	if len(parts) == 0 {
		if v.PageID != "" {
			return v.PageID
		}
		return "Unknown"
	}
	return strings.Join(parts, " • ")
}
