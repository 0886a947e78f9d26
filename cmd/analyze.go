package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <subject>",
	Short: "Analyze one subject (email, IP, domain, or ecosystem/package) across all configured intelligence sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()

		kindHint, _ := cmd.Flags().GetString("kind")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg := loadRuntimeConfig()
		analyzer, err := buildAnalyzer(cfg, logger)
		if err != nil {
			return err
		}

		report, err := analyzer.Analyze(context.Background(), args[0], kindHint)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Subject:    %s (%s)\n", report.Input, report.Type)
		fmt.Printf("Risk score: %d/100 (%s)\n\n", report.RiskScore, formatLevelWithColor(report.RiskLevel))

		fmt.Println("Provider outcomes:")
		for _, outcome := range report.Outcomes {
			line := fmt.Sprintf("  %-14s %s", outcome.ProviderID, formatStatusWithColor(outcome.Status))
			if outcome.Cached {
				line += colorInfo(" (cached)")
			}
			if outcome.Message != "" {
				line += "  " + outcome.Message
			}
			fmt.Println(line)
		}

		fmt.Println("\nRecommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("kind", "", "subject kind hint (email|ip|domain|package); inferred when omitted")
	analyzeCmd.Flags().Bool("json", false, "emit the full report as JSON")
}
