/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <kind> <file>",
	Short: "Check a CSV dataset before serving it",
	Long: `Parse a CSV dataset as the given record kind and report malformed rows and
records missing required fields. Exits non-zero when any problem is found.

Examples:
  dataprov validate finance ./finances.csv
  dataprov validate transport ./transport.csv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, path := args[0], args[1]

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open dataset: %w", err)
		}
		defer f.Close()

		result, err := validateKind(kind, f)
		if err != nil {
			return err
		}

		cmd.Printf("%s: %d records, %d malformed rows, %d incomplete records\n",
			path, result.Records, result.Malformed, len(result.Incomplete))
		if len(result.Incomplete) > 0 {
			cmd.Printf("Incomplete: %s\n", strings.Join(result.Incomplete, ", "))
		}

		if result.Malformed > 0 || len(result.Incomplete) > 0 {
			return fmt.Errorf("dataset %s is not valid %s data", path, kind)
		}
		cmd.Printf("✅ %s is valid\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
