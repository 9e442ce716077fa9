package cmd

import (
	"github.com/spf13/cobra"

	"loadcmp/internal/dummy"
)

var dummyCmd = &cobra.Command{
	Use:   "dummy",
	Short: "Run a local target server to benchmark against",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		dummy.Start(dummy.ServerConfig{Port: port})
		select {}
	},
}

func init() {
	rootCmd.AddCommand(dummyCmd)
	dummyCmd.Flags().IntP("port", "p", 3000, "Port to run the dummy target on")
}
