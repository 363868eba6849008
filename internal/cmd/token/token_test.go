package token

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdtest"
	"github.com/open-cli-collective/mdt/internal/config"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		workspace string
		wantKind  string
		wantURL   string
		wantFile  bool
	}{
		{"url", "https://go.dev", "", "url", "https://go.dev", false},
		{"relative without workspace", "src/a.go:3", "", "file", "", true},
		{"relative with workspace", "src/a.go:3", "w1", "file", "ctx://open?worktreeId=w1&file=src%2Fa.go&line=3", true},
		{"absolute", "/abs/a.go", "", "file", "ctx://open?path=%2Fabs%2Fa.go", true},
		{"plain word", "plain", "w1", "none", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify(tt.token, tt.workspace)
			assert.Equal(t, tt.token, r.Token)
			assert.Equal(t, tt.wantKind, r.Kind)
			assert.Equal(t, tt.wantURL, r.URL)
			assert.Equal(t, tt.wantFile, r.File != nil)
		})
	}
}

func TestToken_Table(t *testing.T) {
	res := cmdtest.Run(t, NewCmdToken(), "", "src/a.go:3:7", "plain")
	require.NoError(t, res.Err)

	lines := strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TOKEN"))
	assert.Equal(t, []string{"src/a.go:3:7", "file", "src/a.go", "3", "7", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"plain", "none", "-", "-", "-", "-"}, strings.Fields(lines[2]))
}

func TestToken_WorkspaceFlag(t *testing.T) {
	res := cmdtest.Run(t, NewCmdToken(), "", "src/a.go", "--workspace", "w1", "-o", "json")
	require.NoError(t, res.Err)

	var results []Result
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "ctx://open?worktreeId=w1&file=src%2Fa.go", results[0].URL)
	require.NotNil(t, results[0].File)
	assert.Equal(t, "src/a.go", results[0].File.Path)
}

func TestToken_WorkspaceFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{WorkspaceID: "cfg"}).Save(path))

	res := cmdtest.Run(t, NewCmdToken(), "", "src/a.go", "--config", path, "-o", "plain")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "worktreeId=cfg")
}

func TestToken_RequiresArgs(t *testing.T) {
	res := cmdtest.Run(t, NewCmdToken(), "")
	require.Error(t, res.Err)
}
