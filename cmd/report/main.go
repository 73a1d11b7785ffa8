// Package main implements the report CLI, which assembles one AI visibility
// report and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/brandlens/ai-visibility/backend/internal/app"
	"github.com/brandlens/ai-visibility/backend/internal/config"
	"github.com/brandlens/ai-visibility/backend/internal/models"
	"github.com/brandlens/ai-visibility/backend/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an AI visibility report for one company",
	Long:  "Asks the configured LLM what it knows about a company, checks where its website ranks for the category searches the LLM suggests, and prints the scored report as JSON.",
	RunE:  runReport,
}

var (
	reportCompany string
	reportWebsite string
	reportTimeout time.Duration
	reportPretty  bool
	reportOutput  string
)

func init() {
	rootCmd.Flags().StringVarP(&reportCompany, "company", "c", "", "Company name (required)")
	rootCmd.Flags().StringVarP(&reportWebsite, "website", "w", "", "Company website, with or without scheme")
	rootCmd.Flags().DurationVar(&reportTimeout, "timeout", 0, "Overall timeout (defaults to report.timeout)")
	rootCmd.Flags().BoolVar(&reportPretty, "pretty", false, "Indent the JSON output")
	rootCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "Write the report to this file instead of stdout")

	_ = rootCmd.MarkFlagRequired("company")
}

func runReport(cmd *cobra.Command, _ []string) error {
	logger := utils.GetLogger()
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	timeout := reportTimeout
	if timeout <= 0 {
		timeout = cfg.Report.Timeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	components := app.Build(ctx, cfg, logger)
	defer components.Close()

	report, err := components.Assembler.Assemble(ctx, models.ReportRequest{
		CompanyName: reportCompany,
		Website:     reportWebsite,
	})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	var data []byte
	if reportPretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if reportOutput != "" {
		if err := os.WriteFile(reportOutput, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.WithField("path", reportOutput).Info("Report written")
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
