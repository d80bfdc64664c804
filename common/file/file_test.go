package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	err := Write("", []byte("ftxclient"))
	assert.ErrorIs(t, err, errNoPath)

	target := filepath.Join(t.TempDir(), "nested", "deeper", "settings.json")
	require.NoError(t, Write(target, []byte("ftxclient")))

	contents, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ftxclient", string(contents))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExists(t *testing.T) {
	t.Parallel()
	assert.False(t, Exists("non-existent"), "non-existent file should not exist")

	tmpFile := filepath.Join(t.TempDir(), "ftx-test.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("hello world"), 0o600))
	assert.True(t, Exists(tmpFile), "file should exist")
}
