package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelmholley1/ukiahumc-signups/cmd/server/commands"
)

var env string

func main() {
	rootCmd := &cobra.Command{
		Use:   "signups-server",
		Short: "Ukiah UMC Signups - Volunteer signup coordination service",
		Long:  `A service for coordinating volunteer signups: liturgist, greeter, and food distribution slots backed by a spreadsheet or Postgres.`,
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required for serve: test, prod, etc.)")

	app := &commands.AppContext{}
	rootCmd.AddCommand(commands.ServeCmd(app, &env))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.InitSheetCmd(&env))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
