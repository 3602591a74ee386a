package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rabotazarulem/driver-matcher/internal/candidate"
	"github.com/rabotazarulem/driver-matcher/internal/logger"
	"github.com/rabotazarulem/driver-matcher/internal/matching"
	"github.com/rabotazarulem/driver-matcher/internal/report"
	"github.com/rabotazarulem/driver-matcher/internal/vacancy"
)

const (
	PromptShowCandidate = "Show a candidate's matches"
	PromptFunnelSummary = "Report by funnel stage"
	PromptExit          = "Exit"
	PromptBack          = "back"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowCandidate, PromptFunnelSummary, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match analyzed candidates against open vacancies",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("candidates", "candidate_analysis.json", "path to the candidate analysis file")
	matchCmd.Flags().String("patches", "patches", "directory with vacancy requirement patches")
	matchCmd.Flags().String("statuses", "vacancies.json", "vacancy lifecycle status file")
	matchCmd.Flags().StringP("output", "o", "matching_results.json", "path to the output report")
	matchCmd.Flags().Int("min-score", 0, "minimal score for a match to be included")
	matchCmd.Flags().Int("top", 0, "top vacancies kept per candidate (0 keeps all)")
	matchCmd.Flags().Int("console-top", 5, "vacancies shown per candidate in console output")
	matchCmd.Flags().Bool("include-blocked", false, "include blocked vacancies in the results")
	matchCmd.Flags().Bool("include-closed", false, "include closed vacancies")
	matchCmd.Flags().BoolP("quiet", "q", false, "no console output and no interactive menu")

	viper.BindPFlag("candidates", matchCmd.Flags().Lookup("candidates"))
	viper.BindPFlag("matching.patches", matchCmd.Flags().Lookup("patches"))
	viper.BindPFlag("matching.statuses", matchCmd.Flags().Lookup("statuses"))
	viper.BindPFlag("matching.output", matchCmd.Flags().Lookup("output"))
	viper.BindPFlag("matching.min-score", matchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("matching.top", matchCmd.Flags().Lookup("top"))
	viper.BindPFlag("matching.include-blocked", matchCmd.Flags().Lookup("include-blocked"))
	viper.BindPFlag("matching.include-closed", matchCmd.Flags().Lookup("include-closed"))
}

// match is the scoring command: load both sides, run the cross product, print,
// save, then hand over to the inspection menu.
func match(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	logger.Info("starting the matcher", zap.String("version", version))

	candidates, err := candidate.Load(viper.GetString("candidates"))
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}
	logger.Info("loaded candidates", zap.Int("count", len(candidates)))

	vacancies, err := vacancy.Load(vacancy.LoadOptions{
		PatchesDir:    viper.GetString("matching.patches"),
		StatusFile:    viper.GetString("matching.statuses"),
		IncludeClosed: viper.GetBool("matching.include-closed"),
	}, logger)
	if err != nil {
		logger.Fatal("loading vacancies", zap.Error(err))
	}
	logger.Info("loaded vacancies", zap.Int("count", len(vacancies)))

	if len(candidates) == 0 || len(vacancies) == 0 {
		logger.Info("exiting", zap.String("reason", "nothing to match"))
		return
	}

	results := matching.RunBatch(candidates, vacancies, matching.Options{
		MinScore:       viper.GetInt("matching.min-score"),
		TopN:           viper.GetInt("matching.top"),
		IncludeBlocked: viper.GetBool("matching.include-blocked"),
	})

	rep := report.New(results, len(candidates), len(vacancies))

	quiet := cmd.Flag("quiet").Value.String() == "true"
	if !quiet {
		consoleTop, _ := cmd.Flags().GetInt("console-top")
		rep.Print(os.Stdout, consoleTop)
	}

	output := viper.GetString("matching.output")
	if err := rep.Save(output); err != nil {
		logger.Fatal("saving the report", zap.Error(err))
	}
	logger.Info("report saved",
		zap.String("output", output),
		zap.Int("candidates_with_matches", rep.CandidatesWithMatches()),
	)

	if quiet {
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, rep, candidates, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleMatchAction(action string, rep *report.Report, candidates []*candidate.Candidate, logger *zap.Logger) error {
	switch action {
	case PromptShowCandidate:
		return showCandidate(rep)
	case PromptFunnelSummary:
		printFunnelSummary(os.Stdout, candidates)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// showCandidate lets the operator pick one candidate and prints the full
// untruncated match list for them.
func showCandidate(rep *report.Report) error {
	items := make([]string, 0, len(rep.Results)+1)
	for _, r := range rep.Results {
		items = append(items, fmt.Sprintf("%s (%d)", r.Candidate, r.TotalMatches))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	single := &report.Report{
		GeneratedAt:     rep.GeneratedAt,
		TotalCandidates: rep.TotalCandidates,
		TotalVacancies:  rep.TotalVacancies,
		Results:         rep.Results[idx : idx+1],
	}
	single.Print(os.Stdout, 0)
	return nil
}

// printFunnelSummary counts candidates per funnel checklist stage.
func printFunnelSummary(w *os.File, candidates []*candidate.Candidate) {
	var permit, preferences, offered, accepted, contact int
	for _, c := range candidates {
		if c.Checklist.HasWorkPermitInPoland {
			permit++
		}
		if c.Checklist.PreferencesProvided {
			preferences++
		}
		if c.Checklist.VacancyOffered {
			offered++
		}
		if c.Checklist.VacancyAccepted {
			accepted++
		}
		if c.Checklist.ExternalContactShared {
			contact++
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Всего кандидатов: %d\n", len(candidates))
	fmt.Fprintf(w, "  ВНЖ/разрешение: %d\n", permit)
	fmt.Fprintf(w, "  Предпочтения собраны: %d\n", preferences)
	fmt.Fprintf(w, "  Вакансия предложена: %d\n", offered)
	fmt.Fprintf(w, "  Вакансия принята: %d\n", accepted)
	fmt.Fprintf(w, "  Контакт получен: %d\n", contact)
	fmt.Fprintln(w, strings.Repeat("=", 40))
}
