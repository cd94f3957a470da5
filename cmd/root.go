package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "store-subscriptions",
	Short: "App-store subscriptions service",
	Long:  "Manage app-store subscriptions: upsert, cancel and expire them over HTTP and gRPC, and run the expiration job.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
