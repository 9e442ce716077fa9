package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loadcmp/internal/banner"
)

var (
	cfgFile string

	// Shared load-shape flags
	users    int
	duration int
	rampUp   int
	timeout  int
	useTUI   bool
	outFile  string

	// Pauses between scenarios and between compared systems, so one
	// run's connection churn does not bleed into the next.
	settlePause  int
	betweenPause int
)

var rootCmd = &cobra.Command{
	Use:   "loadcmp",
	Short: "loadcmp - HTTP load testing and framework comparison",
	Long: `
loadcmp drives weighted synthetic traffic against one or two HTTP
servers and reduces the samples into throughput and latency reports.

Subcommands:
  single   benchmark one server
  compare  benchmark two servers and report a winner
  report   rebuild a comparison report from stored results
  dummy    run a local target server to test against`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	},
}

func Execute() {
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.loadcmp.yaml)")
	rootCmd.PersistentFlags().IntVarP(&users, "users", "u", 100, "Concurrent virtual users")
	rootCmd.PersistentFlags().IntVarP(&duration, "duration", "d", 60, "Duration per scenario in seconds")
	rootCmd.PersistentFlags().IntVarP(&rampUp, "ramp-up", "r", 10, "Ramp-up window in seconds")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 30, "Per-request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&useTUI, "tui", false, "Show the live TUI during runs")
	rootCmd.PersistentFlags().IntVar(&settlePause, "settle", 5, "Seconds to wait between scenarios")
	rootCmd.PersistentFlags().IntVar(&betweenPause, "between", 30, "Seconds to wait between compared systems")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".loadcmp")
		}
	}
	viper.AutomaticEnv()
	viper.ReadInConfig()
}
