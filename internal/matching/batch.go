package matching

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rabotazarulem/driver-matcher/internal/candidate"
	"github.com/rabotazarulem/driver-matcher/internal/vacancy"
)

// Options configures the batch run. Zero values mean: no score threshold, no
// per-candidate truncation, blocked pairs excluded, parallelism = GOMAXPROCS.
type Options struct {
	MinScore       int
	TopN           int
	IncludeBlocked bool
	Parallelism    int
}

// VacancyMatch is one surviving vacancy in a candidate's result set.
type VacancyMatch struct {
	VacancyID   string   `json:"vacancy_id"`
	VacancyName string   `json:"vacancy_name"`
	Score       int      `json:"score"`
	Blockers    []string `json:"blockers"`
	Warnings    []string `json:"warnings"`
	Matches     []string `json:"matches"`
}

// CandidateMatches is the per-candidate breakdown of the batch run.
type CandidateMatches struct {
	Candidate      string         `json:"candidate"`
	FileName       string         `json:"file_name"`
	MessagesCount  int            `json:"messages_count"`
	ProfileSummary string         `json:"profile_summary"`
	TotalMatches   int            `json:"total_matches"`
	Matches        []VacancyMatch `json:"matches"`
}

// RunBatch evaluates the full candidate × vacancy cross product. Pairs are
// independent, so candidates are processed in parallel; each candidate's
// matches get a stable sort by descending score (tie order follows the vacancy
// iteration order) before optional truncation, and candidates are ordered by
// descending surviving-match count.
func RunBatch(candidates []*candidate.Candidate, vacancies []*vacancy.Vacancy, opts Options) []CandidateMatches {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]CandidateMatches, len(candidates))

	var group errgroup.Group
	group.SetLimit(parallelism)

	for i, c := range candidates {
		group.Go(func() error {
			results[i] = matchOne(c, vacancies, opts)
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = group.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalMatches > results[j].TotalMatches
	})

	return results
}

func matchOne(c *candidate.Candidate, vacancies []*vacancy.Vacancy, opts Options) CandidateMatches {
	matches := []VacancyMatch{}

	for _, v := range vacancies {
		result := Match(c, v)

		// A vacancy survives only with an actual positive score above the
		// threshold. Blocked pairs score zero, so they never pass the first
		// condition regardless of IncludeBlocked.
		if result.Score > 0 && result.Score >= opts.MinScore && (!result.Blocked() || opts.IncludeBlocked) {
			matches = append(matches, VacancyMatch{
				VacancyID:   v.PageID,
				VacancyName: v.Name(),
				Score:       result.Score,
				Blockers:    result.Blockers,
				Warnings:    result.Warnings,
				Matches:     result.Matches,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if opts.TopN > 0 && len(matches) > opts.TopN {
		matches = matches[:opts.TopN]
	}

	return CandidateMatches{
		Candidate:      c.ChatName,
		FileName:       c.FileName,
		MessagesCount:  c.MessagesCount,
		ProfileSummary: c.Profile.Summary(),
		TotalMatches:   len(matches),
		Matches:        matches,
	}
}
