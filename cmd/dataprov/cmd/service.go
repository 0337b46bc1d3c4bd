/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/dataprov/pkg/config"
)

const serviceName = "dataprov.service"

// Overridden in tests
var (
	unitPath   = "/etc/systemd/system/" + serviceName
	runCommand = func(command string, args ...string) error {
		c := exec.Command(command, args...)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}
	isRoot = func() bool { return os.Geteuid() == 0 }
)

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage dataprov as a systemd service",
	Long: `Manage dataprov as a systemd service for long running deployments.
The unit restarts the server on failure and runs it as an unprivileged user.`,
}

// installServiceCmd represents the service install command
var installServiceCmd = &cobra.Command{
	Use:   "install",
	Short: "Install dataprov as a systemd service",
	Long: `Write a systemd unit that runs "dataprov up" with the given config,
creating the config first if it is missing, then enable the unit.

Examples:
  sudo dataprov service install
  sudo dataprov service install --user dataprov --binary /opt/dataprov/bin/dataprov`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isRoot() {
			return fmt.Errorf("service install requires root privileges (run with sudo)")
		}

		path := configPath(cmd)
		user, _ := cmd.Flags().GetString("user")
		binary, _ := cmd.Flags().GetString("binary")
		startNow, _ := cmd.Flags().GetBool("start")

		cmd.Printf("🔧 Installing dataprov systemd service...\n")

		cfg, err := loadOrBootstrap(cmd, path)
		if err != nil {
			return err
		}

		unit := renderSystemdUnit(binary, path, user)
		if err := os.WriteFile(unitPath, []byte(unit), 0600); err != nil {
			return fmt.Errorf("failed to write unit file: %w", err)
		}

		if err := systemctl("daemon-reload"); err != nil {
			return err
		}
		if err := systemctl("enable", serviceName); err != nil {
			return err
		}
		cmd.Printf("✅ Service enabled\n")

		if startNow {
			if err := systemctl("start", serviceName); err != nil {
				return err
			}
			cmd.Printf("✅ Service started\n")
		}

		cmd.Printf("\nService: %s\n", serviceName)
		cmd.Printf("Config: %s\n", path)
		cmd.Printf("Listening: %s\n", cfg.Address())
		cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
		return nil
	},
}

// uninstallServiceCmd represents the service uninstall command
var uninstallServiceCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the dataprov systemd service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isRoot() {
			return fmt.Errorf("service uninstall requires root privileges (run with sudo)")
		}

		// Already stopped is fine
		_ = systemctl("stop", serviceName)
		if err := systemctl("disable", serviceName); err != nil {
			cmd.Printf("Warning: could not disable service: %v\n", err)
		}

		if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove unit file: %w", err)
		}
		if err := systemctl("daemon-reload"); err != nil {
			return err
		}

		cmd.Printf("✅ dataprov service uninstalled\n")
		cmd.Printf("Note: the configuration file was not removed\n")
		return nil
	},
}

// logsServiceCmd represents the service logs command
var logsServiceCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show dataprov service logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		lines, _ := cmd.Flags().GetInt("lines")

		journalArgs := []string{"-u", serviceName}
		if follow {
			journalArgs = append(journalArgs, "-f")
		}
		if lines > 0 {
			journalArgs = append(journalArgs, fmt.Sprintf("-n%d", lines))
		}
		return runCommand("journalctl", journalArgs...)
	},
}

// systemctlCmd builds a subcommand that forwards one verb to systemctl
func systemctlCmd(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return systemctl(verb, serviceName)
		},
	}
}

func init() {
	rootCmd.AddCommand(serviceCmd)

	serviceCmd.AddCommand(installServiceCmd)
	serviceCmd.AddCommand(uninstallServiceCmd)
	serviceCmd.AddCommand(logsServiceCmd)
	serviceCmd.AddCommand(systemctlCmd("start", "Start the dataprov service"))
	serviceCmd.AddCommand(systemctlCmd("stop", "Stop the dataprov service"))
	serviceCmd.AddCommand(systemctlCmd("restart", "Restart the dataprov service"))
	serviceCmd.AddCommand(systemctlCmd("status", "Show dataprov service status"))

	installServiceCmd.Flags().String("user", "dataprov", "User to run the service as")
	installServiceCmd.Flags().String("binary", "/usr/local/bin/dataprov", "Path of the installed dataprov binary")
	installServiceCmd.Flags().String("backend", "memory", "Store backend written to a new config (memory or pebble)")
	installServiceCmd.Flags().Bool("start", true, "Start the service after installation")

	logsServiceCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsServiceCmd.Flags().IntP("lines", "n", 0, "Number of lines to show")
}

func loadOrBootstrap(cmd *cobra.Command, path string) (*config.Config, error) {
	if config.ConfigExists(path) {
		return config.LoadConfig(path)
	}
	backend, _ := cmd.Flags().GetString("backend")
	cfg, err := config.BootstrapConfig(path, backend)
	if err != nil {
		return nil, err
	}
	cmd.Printf("✅ Created new configuration at %s\n", path)
	return cfg, nil
}

// renderSystemdUnit returns the unit file running dataprov with configPath
func renderSystemdUnit(binary, configPath, user string) string {
	return fmt.Sprintf(`[Unit]
Description=dataprov record provider
After=network-online.target
Wants=network-online.target

[Service]
User=%[1]s
Group=%[1]s
ExecStart=%[2]s up --config %[3]s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadOnlyPaths=%[4]s

[Install]
WantedBy=multi-user.target
`, user, binary, configPath, filepath.Dir(configPath))
}

func systemctl(args ...string) error {
	if err := runCommand("systemctl", args...); err != nil {
		return fmt.Errorf("systemctl %s failed: %w", strings.Join(args, " "), err)
	}
	return nil
}
