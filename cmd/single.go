package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	singleURL   string
	singleLabel string
)

var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "Benchmark a single server",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := loadScenarios(singleURL)
		if err != nil {
			return err
		}

		store := openStore()
		if store != nil {
			defer store.Close()
		}

		fmt.Printf("🚀 Starting %s benchmark at %s\n", singleLabel, singleURL)
		fmt.Printf("📊 Configuration: %d users, %ds duration, %ds ramp-up\n", users, duration, rampUp)

		results := runSuite(context.Background(), singleLabel, scenarios, store)
		if len(results) == 0 {
			return fmt.Errorf("no scenario produced results")
		}

		fmt.Printf("\n# %s Benchmark Results\n\n", singleLabel)
		for _, r := range results {
			fmt.Printf("## %s\n", r.TestName)
			fmt.Printf("- Requests/sec: %.2f\n", r.RequestsPerSecond)
			fmt.Printf("- Avg response time: %.2fms\n", r.AverageResponseTimeMs)
			fmt.Printf("- P95 response time: %.2fms\n", r.P95ResponseTimeMs)
			fmt.Printf("- P99 response time: %.2fms\n\n", r.P99ResponseTimeMs)
		}

		if outFile != "" {
			if err := writeResultsJSON(outFile, results); err != nil {
				return err
			}
			fmt.Printf("📄 Results saved to %s\n", outFile)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(singleCmd)

	singleCmd.Flags().StringVar(&singleURL, "url", "", "Target server base URL")
	singleCmd.Flags().StringVar(&singleLabel, "label", "", "System label for this server")
	singleCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write results JSON to this file")
	singleCmd.MarkFlagRequired("url")
	singleCmd.MarkFlagRequired("label")
}

func writeResultsJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
