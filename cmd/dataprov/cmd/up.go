/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/dataprov/pkg/config"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap and start the dataprov server",
	Long: `Bootstrap dataprov by creating a configuration file if it doesn't exist,
then start the API server. This is the recommended way to get dataprov running.

Examples:
  dataprov up
  dataprov up --port 9000 --backend pebble
  dataprov up --config ./custom-config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(cmd)
		backend, _ := cmd.Flags().GetString("backend")

		var cfg *config.Config
		var err error

		if config.ConfigExists(path) {
			cfg, err = config.LoadConfig(path)
			if err != nil {
				return err
			}
			cmd.Printf("✅ Loaded existing configuration from %s\n", path)
		} else {
			cmd.Printf("🔧 First run detected. Bootstrapping dataprov...\n")
			cfg, err = config.BootstrapConfig(path, backend)
			if err != nil {
				return err
			}
			cmd.Printf("✅ Configuration created at %s\n", path)
		}

		applyServerFlags(cmd, cfg)
		return runServer(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	addServerFlags(upCmd)
	upCmd.Flags().String("backend", "memory", "Store backend written to a new config (memory or pebble)")
}
