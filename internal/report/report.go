// Package report assembles and renders the batch matching output: the JSON
// artifact, the console view and the standalone dashboard.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rabotazarulem/driver-matcher/internal/matching"
)

// Report is the sole persisted artifact of a batch run.
type Report struct {
	GeneratedAt     time.Time                   `json:"generated_at"`
	TotalCandidates int                         `json:"total_candidates"`
	TotalVacancies  int                         `json:"total_vacancies"`
	Results         []matching.CandidateMatches `json:"results"`
}

// New builds a report around the batch results with a fresh timestamp.
func New(results []matching.CandidateMatches, totalCandidates, totalVacancies int) *Report {
	if results == nil {
		results = []matching.CandidateMatches{}
	}
	return &Report{
		GeneratedAt:     time.Now(),
		TotalCandidates: totalCandidates,
		TotalVacancies:  totalVacancies,
		Results:         results,
	}
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Load reads a previously saved report.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %q: %w", path, err)
	}
	return &r, nil
}

// CandidatesWithMatches counts candidates that have at least one surviving
// vacancy.
func (r *Report) CandidatesWithMatches() int {
	n := 0
	for _, result := range r.Results {
		if result.TotalMatches > 0 {
			n++
		}
	}
	return n
}
