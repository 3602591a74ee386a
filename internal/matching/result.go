// Package matching implements the candidate/vacancy decision procedure: hard
// blockers, advisory warnings and the additive compatibility score, plus the
// batch orchestrator that evaluates every candidate against every vacancy.
package matching

// Result is the verdict for one candidate/vacancy pair. When Blockers is
// non-empty the pair is disqualified: Score is zero and Matches is empty, so a
// blocked pair never carries positive signal. Computed fresh on every
// evaluation, never cached.
type Result struct {
	Score    int      `json:"score"`
	Blockers []string `json:"blockers"`
	Warnings []string `json:"warnings"`
	Matches  []string `json:"matches"`
}

func newResult() Result {
	return Result{
		Blockers: []string{},
		Warnings: []string{},
		Matches:  []string{},
	}
}

// Blocked reports whether the pair was disqualified.
func (r *Result) Blocked() bool {
	return len(r.Blockers) > 0
}
