package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/dataprov/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		runs := stubServer(t, nil)
		configPath := filepath.Join(t.TempDir(), "missing.yaml")

		out, err := execute(t, "serve", "--config", configPath)
		require.NoError(t, err)
		assert.Equal(t, 1, *runs)
		assert.Contains(t, out, "Starting dataprov server on 127.0.0.1:8080")
		assert.False(t, config.ConfigExists(configPath))
	})

	t.Run("flags override config", func(t *testing.T) {
		stubServer(t, nil)
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		cfg := config.DefaultConfig()
		cfg.Port = 7000
		require.NoError(t, config.SaveConfig(cfg, configPath))

		out, err := execute(t, "serve", "--config", configPath, "--bind", "0.0.0.0")
		require.NoError(t, err)
		assert.Contains(t, out, "0.0.0.0:7000")

		out, err = execute(t, "serve", "--config", configPath, "--port", "9001")
		require.NoError(t, err)
		assert.Contains(t, out, "127.0.0.1:9001")
	})

	t.Run("server error is returned", func(t *testing.T) {
		stubServer(t, errors.New("address in use"))

		_, err := execute(t, "serve", "--config", filepath.Join(t.TempDir(), "c.yaml"))
		assert.ErrorContains(t, err, "address in use")
	})

	t.Run("invalid port", func(t *testing.T) {
		runs := stubServer(t, nil)

		_, err := execute(t, "serve", "--config", filepath.Join(t.TempDir(), "c.yaml"), "--port", "70000")
		assert.Error(t, err)
		assert.Zero(t, *runs)
	})

	t.Run("unreadable config", func(t *testing.T) {
		stubServer(t, nil)
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("port: [not a port"), 0600))

		_, err := execute(t, "serve", "--config", configPath)
		assert.Error(t, err)
	})

	t.Run("container not initialized", func(t *testing.T) {
		SetContainer(nil)

		_, err := execute(t, "serve", "--config", filepath.Join(t.TempDir(), "c.yaml"))
		assert.ErrorContains(t, err, "dependency container not initialized")
	})
}

func TestUpCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	t.Run("bootstraps config on first run", func(t *testing.T) {
		runs := stubServer(t, nil)

		out, err := execute(t, "up", "--config", configPath, "--backend", "pebble")
		require.NoError(t, err)
		assert.Contains(t, out, "First run detected")
		assert.Contains(t, out, "Store backend: pebble")
		assert.Equal(t, 1, *runs)

		cfg, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "pebble", cfg.Store.Backend)
	})

	t.Run("loads existing config", func(t *testing.T) {
		stubServer(t, nil)

		out, err := execute(t, "up", "--config", configPath, "--port", "9100")
		require.NoError(t, err)
		assert.Contains(t, out, "Loaded existing configuration")
		assert.Contains(t, out, "127.0.0.1:9100")

		// Flags do not rewrite the file
		cfg, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	path := config.GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "dataprov")
}
