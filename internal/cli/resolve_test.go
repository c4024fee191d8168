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

func TestResolveCommand_ReportsAncestorPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "doc.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("hello world\n"), 0644))

	info := cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
	cmd := cli.NewRootCommand(info)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"resolve", mdFile, "1"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "pos: 1")
	assert.Contains(t, output, "parent: paragraph")
}

func TestResolveCommand_InvalidPosition(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "doc.md")
	require.NoError(t, os.WriteFile(mdFile, []byte("hello world\n"), 0644))

	info := cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
	cmd := cli.NewRootCommand(info)

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"resolve", mdFile, "not-a-number"})

	err := cmd.Execute()
	assert.Error(t, err)
}
