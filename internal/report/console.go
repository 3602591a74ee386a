package report

import (
	"fmt"
	"io"
	"strings"
)

// Print renders the per-candidate breakdown, limiting each candidate to
// topPerCandidate vacancies (non-positive shows all), the first few match
// reasons and warnings.
func (r *Report) Print(w io.Writer, topPerCandidate int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "РЕЗУЛЬТАТЫ МАТЧИНГА")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for _, result := range r.Results {
		fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
		fmt.Fprintf(w, "%s (%s)\n", result.Candidate, result.ProfileSummary)
		fmt.Fprintf(w, "   Подходящих вакансий: %d\n", result.TotalMatches)
		fmt.Fprintln(w, strings.Repeat("-", 60))

		shown := 0
		for i, match := range result.Matches {
			if topPerCandidate > 0 && i >= topPerCandidate {
				break
			}
			if match.Score == 0 && len(match.Blockers) > 0 {
				continue
			}
			shown++

			fmt.Fprintf(w, "\n%d. [%3d] %s\n", i+1, match.Score, match.VacancyName)

			if len(match.Matches) > 0 {
				limit := min(len(match.Matches), 4)
				fmt.Fprintf(w, "   + %s\n", strings.Join(match.Matches[:limit], " | "))
			}

			limit := min(len(match.Warnings), 2)
			for _, warn := range match.Warnings[:limit] {
				fmt.Fprintf(w, "   ! %s\n", warn)
			}

			for _, blocker := range match.Blockers {
				fmt.Fprintf(w, "   x %s\n", blocker)
			}
		}

		if shown == 0 {
			fmt.Fprintln(w, "   Нет подходящих вакансий")
		}
	}
}
