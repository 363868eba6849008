// Package token provides the token command.
package token

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/pkg/tokens"
)

type tokenOptions struct {
	workspace string
}

// Result is the classification of one token.
type Result struct {
	Token string          `json:"token"`
	Kind  string          `json:"kind"`
	URL   string          `json:"url,omitempty"`
	File  *tokens.FileRef `json:"file,omitempty"`
}

// NewCmdToken creates the token command.
func NewCmdToken() *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token <token>...",
		Short: "Classify tokens as URLs or file references",
		Long: `Run the inline code recognizers over each argument and print the link
it would become.

File references only get a link when their path is absolute or a
workspace id is known (from --workspace, the config or MDT_WORKSPACE_ID).`,
		Example: `  # A URL
  mdt token https://go.dev

  # File references with line and column
  mdt token /src/main.go:12:4 ./README.md --workspace ws-1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Setup(cmd)
			if err != nil {
				return err
			}
			return runToken(env, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.workspace, "workspace", "", "Workspace id for relative file references")

	return cmd
}

func runToken(env *cmdutil.Env, args []string, opts *tokenOptions) error {
	workspace := opts.workspace
	if workspace == "" {
		workspace = env.Config.WorkspaceID
	}

	results := make([]Result, 0, len(args))
	for _, arg := range args {
		results = append(results, Classify(arg, workspace))
	}

	if handled, err := env.Renderer.Render(results); handled {
		return err
	}

	headers := []string{"TOKEN", "KIND", "PATH", "LINE", "COL", "URL"}
	var rows [][]string
	for _, r := range results {
		path, line, col := "-", "-", "-"
		if r.File != nil {
			path = r.File.Path
			if r.File.Line > 0 {
				line = strconv.Itoa(r.File.Line)
			}
			if r.File.Col > 0 {
				col = strconv.Itoa(r.File.Col)
			}
		}
		url := r.URL
		if url == "" {
			url = "-"
		}
		rows = append(rows, []string{r.Token, r.Kind, path, line, col, url})
	}
	env.Renderer.RenderTable(headers, rows)
	return nil
}

// Classify runs the recognizers over token.
func Classify(token, workspaceID string) Result {
	m := tokens.Classify(token, workspaceID)
	r := Result{Token: token, Kind: m.Kind.String(), URL: m.URL}
	if m.Kind == tokens.KindFile {
		file := m.File
		r.File = &file
	}
	return r
}
