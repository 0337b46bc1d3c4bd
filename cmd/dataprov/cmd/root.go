/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/dataprov/pkg/config"
	"github.com/ssargent/dataprov/pkg/di"
	"github.com/ssargent/dataprov/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dataprov",
	Short: "dataprov - tabular and SOAP record providers",
	Long: `dataprov serves finance and transport records as CSV over REST and
patient records over SOAP, backed by an in-process record store.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	return path
}

// loadConfig reads the config file when present and falls back to defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath(cmd)
	if !config.ConfigExists(path) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
}

// buildApplication wires and seeds the application described by cfg
func buildApplication(cmd *cobra.Command, cfg *config.Config) (*di.Application, error) {
	if container == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	app, err := container.Build(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	app.Seed(cmd.Context())
	return app, nil
}
