/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <kind>",
	Short: "Print the seeded records of a kind as CSV",
	Long: `Load the configured dataset for a record kind, exactly as the server
would at startup, and print the resulting records as CSV ordered by id.

Examples:
  dataprov export finance
  dataprov export transport --config ./dataprov.yaml > transport.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		app, err := buildApplication(cmd, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		return exportKind(app, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
