package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build and query the reporting index",
}

var reportBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the reporting index from the region documents",
	RunE:  runReportBuild,
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-region source counts from the index",
	RunE:  runReportSummary,
}

func init() {
	reportCmd.AddCommand(reportBuildCmd)
	reportCmd.AddCommand(reportSummaryCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportBuild(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	if err := reportService.Build(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Reporting index rebuilt.")
	return nil
}

func runReportSummary(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	counts, err := reportService.Summary(cmd.Context())
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		cmd.Println("Index is empty. Run 'srcmgr report build' first.")
		return nil
	}

	for _, c := range counts {
		cmd.Printf("%-12s %d\n", c.Region, c.SourceCount)
	}
	return nil
}
