package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rabotazarulem/driver-matcher/internal/candidate"
	"github.com/rabotazarulem/driver-matcher/internal/extract"
	"github.com/rabotazarulem/driver-matcher/internal/extract/gemini"
	"github.com/rabotazarulem/driver-matcher/internal/logger"
	"github.com/rabotazarulem/driver-matcher/internal/secrets"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze exported chats into structured candidate profiles",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("messages-dir", "exported_messages", "directory with exported chat files")
	analyzeCmd.Flags().String("tiktok-export", "", "TikTok account data export file (user_data_tiktok.json)")
	analyzeCmd.Flags().StringP("output", "o", "candidate_analysis.json", "path to the output file")
	analyzeCmd.Flags().Int("batch-size", 50, "how many chats to process in this run")
	analyzeCmd.Flags().Int("start-from", 0, "index of the first chat to consider")
	analyzeCmd.Flags().Int("parallel", 5, "number of parallel analysis requests")
	analyzeCmd.Flags().Bool("fresh", false, "discard existing results and re-analyze everything")
	analyzeCmd.Flags().String("model", "", "gemini model name")
	analyzeCmd.Flags().String("api-key-file", "", "file with the gemini api key")

	viper.BindPFlag("ai.gemini.model", analyzeCmd.Flags().Lookup("model"))
	viper.BindPFlag("ai.gemini.api-key-file", analyzeCmd.Flags().Lookup("api-key-file"))
}

// analyze drives the extraction: read chats, run the oracle over the new
// ones, checkpoint merged results into the candidate store.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting chat analysis", zap.String("version", version))

	chats, err := readChats(cmd)
	if err != nil {
		zlog.Fatal("reading chats", zap.Error(err))
	}
	zlog.Info("chats loaded", zap.Int("count", len(chats)))

	output, _ := cmd.Flags().GetString("output")

	// A first run has no previous results yet.
	existing, err := candidate.Load(output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		zlog.Fatal("loading previous results", zap.Error(err))
	}

	analyzer, err := newAnalyzer(ctx, config, zlog)
	if err != nil {
		zlog.Fatal(
			"building the analyzer",
			zap.Error(err),
			zap.String("hint", "set --api-key-file, GEMINI_API_KEY_FILE or ai.gemini.api-key-file in the configuration file"),
		)
	}

	runner := extract.NewRunner(analyzer, zlog, func(results []*candidate.Candidate) error {
		return candidate.Save(output, results)
	})

	batchSize, _ := cmd.Flags().GetInt("batch-size")
	startFrom, _ := cmd.Flags().GetInt("start-from")
	parallel, _ := cmd.Flags().GetInt("parallel")
	fresh, _ := cmd.Flags().GetBool("fresh")

	results, err := runner.Run(ctx, chats, existing, extract.Options{
		BatchSize: batchSize,
		StartFrom: startFrom,
		Parallel:  parallel,
		Fresh:     fresh,
	})
	if err != nil {
		zlog.Fatal("analysis failed", zap.Error(err))
	}

	if err := candidate.Save(output, results); err != nil {
		zlog.Fatal("saving results", zap.Error(err))
	}

	zlog.Info("analysis saved",
		zap.String("output", output),
		zap.Int("candidates", len(results)),
	)
}

func readChats(cmd *cobra.Command) ([]*extract.Chat, error) {
	export, _ := cmd.Flags().GetString("tiktok-export")
	if export != "" {
		return extract.ReadTikTokExport(export)
	}

	dir, _ := cmd.Flags().GetString("messages-dir")
	return extract.ReadChatDir(dir)
}

func newAnalyzer(ctx context.Context, config *Config, zlog *zap.Logger) (extract.Analyzer, error) {
	var cfg GeminiConfig
	provider := ""

	if config != nil && config.AI != nil {
		provider = strings.TrimSpace(strings.ToLower(config.AI.Provider))
		if config.AI.Gemini != nil {
			cfg = *config.AI.Gemini
		}
	}

	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}

	if cfg.APIKeyFile == "" {
		cfg.APIKeyFile = viper.GetString("ai.gemini.api-key-file")
	}
	if cfg.Model == "" {
		cfg.Model = viper.GetString("ai.gemini.model")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		Env:  "GEMINI_API_KEY",
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	extractorLogger := logger.WithAnalyzerFields(zlog, "gemini", generator.Model())

	return gemini.NewExtractor(generator, cfg.Recruiter, cfg.MaxLogLength, extractorLogger), nil
}
