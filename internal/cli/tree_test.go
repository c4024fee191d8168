package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docengine/internal/cli"
)

func TestTreeCommand_MarkdownInput(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "doc.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("# Title\n\nBody text.\n"), 0644))

	info := cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
	cmd := cli.NewRootCommand(info)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"tree", mdFile})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "doc(")
	assert.Contains(t, output, "heading")
	assert.Contains(t, output, "paragraph")
}

func TestTreeCommand_MissingFile(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
	cmd := cli.NewRootCommand(info)

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"tree", "/nonexistent/doc.md"})

	err := cmd.Execute()
	assert.Error(t, err)
}
