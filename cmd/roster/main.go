package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Roster — multi-tenant organizational management API",
	Long:  "Roster is a backend for managing companies and their users, teams, projects and announcements, with credential-per-request authentication and admin gating.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/roster.yaml)")
}

func main() {
	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
