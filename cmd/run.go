package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"loadcmp/internal/bench"
	"loadcmp/internal/cli"
	"loadcmp/internal/metrics"
	"loadcmp/internal/scenario"
	"loadcmp/internal/storage"
	"loadcmp/internal/tui"
)

// loadScenarios returns the custom scenarios from the config file when
// present, the canned suite otherwise.
func loadScenarios(baseURL string) ([]scenario.Scenario, error) {
	custom, err := scenario.FromConfig(viper.GetViper(), baseURL, users, duration, rampUp)
	if err != nil {
		return nil, err
	}
	if len(custom) > 0 {
		return custom, nil
	}
	return scenario.Suite(baseURL, users, duration, rampUp), nil
}

// runSuite benchmarks every scenario against one system. A scenario
// that fails to configure is reported and skipped; the rest still run.
func runSuite(ctx context.Context, label string, scenarios []scenario.Scenario, store *storage.Store) []metrics.Result {
	var results []metrics.Result

	for i, sc := range scenarios {
		sc.Config.TimeoutSec = timeout

		lt, err := bench.New(sc.Config)
		if err != nil {
			fmt.Printf("⚠️  Skipping %s: %v\n", sc.Name, err)
			continue
		}

		var agg *metrics.Aggregate
		if useTUI {
			agg, err = tui.Run(ctx, lt, label)
			if err != nil {
				fmt.Printf("⚠️  %s failed: %v\n", sc.Name, err)
				continue
			}
			cli.PrintSummary(agg)
		} else {
			agg = cli.Start(ctx, lt, label, sc.Name)
		}

		res := agg.Result(sc.Name)
		results = append(results, res)

		if store != nil {
			err := store.Save(storage.Entry{
				Label:    label,
				TestName: sc.Name,
				Config:   sc.Config,
				Result:   res,
			})
			if err != nil {
				fmt.Printf("⚠️  Could not persist %s result: %v\n", sc.Name, err)
			}
		}

		if i < len(scenarios)-1 && settlePause > 0 {
			fmt.Printf("⏳ Waiting %ds before next scenario...\n", settlePause)
			time.Sleep(time.Duration(settlePause) * time.Second)
		}
	}

	return results
}

// openStore opens the history database. Failure is not fatal, a run
// without persistence still prints its report.
func openStore() *storage.Store {
	path, err := storage.DefaultPath()
	if err != nil {
		fmt.Printf("⚠️  History disabled: %v\n", err)
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		fmt.Printf("⚠️  History disabled: %v\n", err)
		return nil
	}
	return store
}
