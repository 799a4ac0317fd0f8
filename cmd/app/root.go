package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "streamflix",
	Short: "Streaming service accounts, profiles and library backend",
	Long: `Backend for a streaming-service clone: user accounts, viewing profiles,
watchlists, viewing history, avatars and subscription plans.

Without a subcommand the HTTP API is started, same as "streamflix serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing app.env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
