package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data-colors.csv"), []byte("title,color\nDune,orange\nDune Messiah,blue\n"), 0o600))

	out, err := execute(t, "load", "--base", dir, "--file", "data-colors.csv", "--format", "json")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"header": ["title", "color"],
		"rows": [
			{"title": "Dune", "color": "orange"},
			{"title": "Dune Messiah", "color": "blue"}
		]
	}`, out)
}

func TestLoadCommand_UnknownVariant(t *testing.T) {
	_, err := execute(t, "load", "poems")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown variant "poems"`)
}

func TestVariantsCommand(t *testing.T) {
	out, err := execute(t, "variants")
	require.NoError(t, err)
	assert.Equal(t, "books\tdata.csv\ncolors\tdata-colors.csv\n", out)
}
