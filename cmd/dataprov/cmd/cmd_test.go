package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ssargent/dataprov/pkg/api"
	"github.com/ssargent/dataprov/pkg/di"
)

// execute runs the root command with args and returns everything printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag defaults, which cobra keeps between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// stubServer injects a container whose server returns at once and counts runs
func stubServer(t *testing.T, runErr error) *int {
	t.Helper()
	runs := 0
	c := di.NewContainer()
	c.SetServerStarter(func(context.Context, *api.Server) error {
		runs++
		return runErr
	})
	SetContainer(c)
	t.Cleanup(func() { SetContainer(nil) })
	return &runs
}
