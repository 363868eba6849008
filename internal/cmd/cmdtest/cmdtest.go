// Package cmdtest runs mdt commands in tests.
package cmdtest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/config"
)

// Result holds the captured streams of a command run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Run executes sub under a root carrying the global flags. The config
// directory is isolated in a temp dir, so a config file must be passed
// with --config. stdin is fed to the command.
func Run(t *testing.T, sub *cobra.Command, stdin string, args ...string) Result {
	t.Helper()
	Isolate(t)

	root := &cobra.Command{
		Use:           "mdt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmdutil.AddGlobalFlags(root)
	root.AddCommand(sub)

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{sub.Name(), "--no-color"}, args...))

	err := root.Execute()
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// Isolate points the config lookup at an empty temp dir and clears the
// environment overrides.
func Isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	return dir
}
