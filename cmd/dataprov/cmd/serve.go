/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/dataprov/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the dataprov API server using the configuration file, or the
defaults when no file exists. Finance and transport records are seeded from
the configured datasets before the server starts.

Examples:
  dataprov serve
  dataprov serve --port 9000 --bind 0.0.0.0
  dataprov serve --config ./dataprov.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyServerFlags(cmd, cfg)
		return runServer(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServerFlags(serveCmd)
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
}

// applyServerFlags overrides config values with flags the user set explicitly
func applyServerFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind") {
		cfg.Bind, _ = cmd.Flags().GetString("bind")
	}
}

func runServer(cmd *cobra.Command, cfg *config.Config) error {
	app, err := buildApplication(cmd, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	cmd.Printf("🚀 Starting dataprov server on %s\n", cfg.Address())
	cmd.Printf("📦 Store backend: %s\n", cfg.Store.Backend)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
