package formatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, WriteResult("# Firefox 143.0.1\n\nSummary.", path, "143.0.1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Firefox 143.0.1\n\nSummary.", string(data))
}

func TestWriteResultOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteResult("fresh", path, "143.0"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestWriteResultBadPath(t *testing.T) {
	err := WriteResult("text", filepath.Join(t.TempDir(), "missing", "out.md"), "143.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write output")
}
