package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"loadcmp/internal/report"
)

var (
	aURL   string
	bURL   string
	aLabel string
	bLabel string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Benchmark two servers and report a winner",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store := openStore()
		if store != nil {
			defer store.Close()
		}

		fmt.Printf("🚀 Starting %s vs %s comparison benchmark\n", aLabel, bLabel)
		fmt.Printf("📊 Configuration: %d users, %ds duration, %ds ramp-up\n", users, duration, rampUp)

		comparison := report.NewComparison(aLabel, bLabel)

		fmt.Printf("\n🔥 Testing %s at %s\n", aLabel, aURL)
		scenariosA, err := loadScenarios(aURL)
		if err != nil {
			return err
		}
		for _, r := range runSuite(ctx, aLabel, scenariosA, store) {
			comparison.AddA(r)
		}

		if betweenPause > 0 {
			fmt.Printf("\n⏳ Waiting %d seconds between tests...\n", betweenPause)
			time.Sleep(time.Duration(betweenPause) * time.Second)
		}

		fmt.Printf("\n🔥 Testing %s at %s\n", bLabel, bURL)
		scenariosB, err := loadScenarios(bURL)
		if err != nil {
			return err
		}
		for _, r := range runSuite(ctx, bLabel, scenariosB, store) {
			comparison.AddB(r)
		}

		doc := comparison.Markdown()
		fmt.Printf("\n%s\n", doc)

		filename := fmt.Sprintf("benchmark_report_%s.md", time.Now().UTC().Format("20060102_150405"))
		if outFile != "" {
			filename = outFile
		}
		if err := os.WriteFile(filename, []byte(doc), 0644); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Printf("📄 Report saved to %s\n", filename)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&aURL, "a-url", "http://localhost:3000", "First server base URL")
	compareCmd.Flags().StringVar(&bURL, "b-url", "http://localhost:5150", "Second server base URL")
	compareCmd.Flags().StringVar(&aLabel, "a-label", "AXUM", "Label for the first system")
	compareCmd.Flags().StringVar(&bLabel, "b-label", "LOCO", "Label for the second system")
	compareCmd.Flags().StringVarP(&outFile, "out", "o", "", "Report filename (default benchmark_report_<timestamp>.md)")
}
