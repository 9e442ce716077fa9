package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loadcmp/internal/report"
)

var (
	reportFormat string
	reportOut    string
	reportALabel string
	reportBLabel string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild a comparison report from stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("📊 Generating comparison report in %s format\n", reportFormat)

		comparison := loadComparison()

		var doc string
		switch reportFormat {
		case "markdown", "md":
			doc = comparison.Markdown()
		case "json":
			data, err := comparison.JSON()
			if err != nil {
				return err
			}
			doc = string(data)
		case "html":
			doc = comparison.HTML()
		default:
			return fmt.Errorf("unsupported format: %s", reportFormat)
		}

		if reportOut != "" {
			if err := os.WriteFile(reportOut, []byte(doc), 0644); err != nil {
				return err
			}
			fmt.Printf("📄 Report saved to %s\n", reportOut)
			return nil
		}

		fmt.Println(doc)
		return nil
	},
}

// loadComparison pulls both labels' history from the store, falling
// back to the canned sample data when nothing is stored yet.
func loadComparison() *report.Comparison {
	store := openStore()
	if store == nil {
		return report.SampleComparison()
	}
	defer store.Close()

	resultsA, errA := store.ByLabel(reportALabel)
	resultsB, errB := store.ByLabel(reportBLabel)
	if errA != nil || errB != nil || (len(resultsA) == 0 && len(resultsB) == 0) {
		fmt.Println("ℹ️  No stored results found, using sample data")
		return report.SampleComparison()
	}

	comparison := report.NewComparison(reportALabel, reportBLabel)
	comparison.ResultsA = resultsA
	comparison.ResultsB = resultsB
	return comparison
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "markdown", "Output format (markdown, json, html)")
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "Output file path (default stdout)")
	reportCmd.Flags().StringVar(&reportALabel, "a-label", "AXUM", "Label of the first system")
	reportCmd.Flags().StringVar(&reportBLabel, "b-label", "LOCO", "Label of the second system")
}
