package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rabotazarulem/driver-matcher/internal/logger"
	"github.com/rabotazarulem/driver-matcher/internal/report"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Build a standalone HTML dashboard with embedded data",
	Run: func(cmd *cobra.Command, _ []string) {
		dashboard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().String("template", "dashboard.html", "path to the dashboard template")
	dashboardCmd.Flags().String("candidates", "candidate_analysis.json", "path to the candidate analysis file")
	dashboardCmd.Flags().String("matching", "matching_results.json", "path to the matching results file")
	dashboardCmd.Flags().StringP("output", "o", "dashboard-standalone.html", "path to the output file")
}

func dashboard(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	template, _ := cmd.Flags().GetString("template")
	candidates, _ := cmd.Flags().GetString("candidates")
	matching, _ := cmd.Flags().GetString("matching")
	output, _ := cmd.Flags().GetString("output")

	if err := report.BuildDashboard(template, candidates, matching, output); err != nil {
		zlog.Fatal("building the dashboard", zap.Error(err))
	}

	zlog.Info("dashboard saved", zap.String("output", output))
}
