/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/dataprov/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with default settings: the bundled finance
and transport datasets, an in-memory store and text logging.

Examples:
  dataprov init
  dataprov init --backend pebble --config ./dataprov.yaml
  dataprov init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(cmd)
		backend, _ := cmd.Flags().GetString("backend")
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(path) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", path)
			return nil
		}

		cfg, err := config.BootstrapConfig(path, backend)
		if err != nil {
			return err
		}

		cmd.Printf("✅ Configuration written to %s\n", path)
		cmd.Printf("Store backend: %s\n", cfg.Store.Backend)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  dataprov serve --config %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("backend", "memory", "Store backend (memory or pebble)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
