package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "crypto-pulse",
	Short: "Telegram bot for crypto price alerts, charts and news",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
