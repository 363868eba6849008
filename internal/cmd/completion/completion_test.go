package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestRootCmd creates a minimal root command for testing.
func createTestRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mdt",
		Short: "Test CLI",
	}
	root.PersistentFlags().StringP("output", "o", "", "output format")

	themed := &cobra.Command{Use: "init", RunE: func(*cobra.Command, []string) error { return nil }}
	themed.Flags().String("theme", "", "theme")
	root.AddCommand(themed)
	return root
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestNewCmdCompletion(t *testing.T) {
	cmd := NewCmdCompletion()

	assert.Equal(t, "completion", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	// Should have 4 subcommands
	assert.Len(t, cmd.Commands(), 4)
	for _, sub := range cmd.Commands() {
		assert.Contains(t, sub.Long, "mdt completion "+sub.Name())
	}
}

func TestShellCompletion(t *testing.T) {
	testCases := []struct {
		shell  string
		marker string
	}{
		{"bash", "bash completion"},
		{"zsh", "compdef"},
		{"fish", "complete -c"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tc := range testCases {
		t.Run(tc.shell, func(t *testing.T) {
			root := createTestRootCmd()
			root.AddCommand(NewCmdCompletion())

			output, err := run(t, root, "completion", tc.shell)
			require.NoError(t, err)
			assert.Contains(t, output, tc.marker)
		})
	}
}

func TestCompletionRejectsExtraArgs(t *testing.T) {
	for _, sh := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(sh+" rejects args", func(t *testing.T) {
			root := createTestRootCmd()
			root.AddCommand(NewCmdCompletion())

			_, err := run(t, root, "completion", sh, "unexpected-arg")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown command")
		})
	}
}

func TestRegisterFlagCompletions(t *testing.T) {
	t.Run("output formats", func(t *testing.T) {
		root := createTestRootCmd()
		RegisterFlagCompletions(root)

		output, err := run(t, root, cobra.ShellCompRequestCmd, "init", "--output", "")
		require.NoError(t, err)
		for _, format := range []string{"table", "json", "plain", "dump"} {
			assert.Contains(t, output, format+"\n")
		}
	})

	t.Run("themes", func(t *testing.T) {
		root := createTestRootCmd()
		RegisterFlagCompletions(root)

		output, err := run(t, root, cobra.ShellCompRequestCmd, "init", "--theme", "")
		require.NoError(t, err)
		lines := strings.Split(output, "\n")
		assert.Contains(t, lines, "github")
		assert.Contains(t, lines, "monokai")
	})
}
