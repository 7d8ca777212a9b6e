package bmo

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolOutput = `Fetching bugs...
# Bug 1111111
Crash when seeking in a video element.
Severity: critical
# Bug 2222222
Session restore loses pinned tabs.
# Bug 9999999
Not requested, must be dropped.
`

func TestSplitByBug(t *testing.T) {
	sections := splitByBug(toolOutput, []int{1111111, 2222222})
	require.Len(t, sections, 2)
	assert.Contains(t, sections[1111111], "# Bug 1111111")
	assert.Contains(t, sections[1111111], "Severity: critical")
	assert.Contains(t, sections[2222222], "Session restore loses pinned tabs.")
	assert.NotContains(t, sections[2222222], "Not requested")
}

// fakeTool writes an executable that emits fixed markdown regardless of the
// requested IDs.
func fakeTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script fake tool")
	}
	path := filepath.Join(t.TempDir(), "bmo-to-md")
	script := "#!/bin/sh\ncat <<'EOF'\n" + toolOutput + "EOF\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestEnrichStubsUnknownIDs(t *testing.T) {
	enricher := Enricher{Path: fakeTool(t), BatchSize: 50}

	bugs, err := enricher.Enrich([]int{1111111, 2222222, 3333333})
	require.NoError(t, err)
	require.Len(t, bugs, 3)

	assert.Equal(t, 1111111, bugs[0].ID)
	assert.False(t, bugs[0].Stub)
	assert.Contains(t, bugs[0].Markdown, "Crash when seeking")

	assert.False(t, bugs[1].Stub)

	// The ID the tool knows nothing about degrades to a stub; the run
	// still completes.
	assert.Equal(t, 3333333, bugs[2].ID)
	assert.True(t, bugs[2].Stub)
	assert.Equal(t, "Bug 3333333: (details unavailable)", bugs[2].Markdown)
}

func TestEnrichMissingToolFallsBackToStubs(t *testing.T) {
	enricher := Enricher{Path: "/nonexistent/bmo-to-md", BatchSize: 2}

	bugs, err := enricher.Enrich([]int{1111111, 2222222, 3333333})
	require.Error(t, err)

	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))

	require.Len(t, bugs, 3)
	for _, bug := range bugs {
		assert.True(t, bug.Stub)
		assert.Contains(t, bug.Markdown, "(details unavailable)")
	}
}

func TestEnrichEmpty(t *testing.T) {
	enricher := Enricher{Path: "/nonexistent/bmo-to-md"}
	bugs, err := enricher.Enrich(nil)
	assert.NoError(t, err)
	assert.Empty(t, bugs)
}

func TestProbeMissingTool(t *testing.T) {
	enricher := Enricher{Path: "/nonexistent/bmo-to-md"}
	assert.Error(t, enricher.Probe())
}
