package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padenot/fx-release-analyzer/pkg/model"
)

func sampleInput() Input {
	return Input{
		Version: "143.0.1",
		Stats: model.CommitStats{
			TotalCommits:      3,
			TotalFilesChanged: 4,
			TotalInsertions:   117,
			TotalDeletions:    43,
			Contributors:      map[string]int{"Alice": 1, "Bob": 1, "Carol": 1},
			FileTypes:         map[string]int{"cpp": 1, "h": 1, "mjs": 1},
			Components:        map[string]int{"dom": 2, "browser": 2},
		},
		Commits: []model.Commit{
			{Hash: strings.Repeat("a", 40), Subject: "Bug 1111111 - Fix video crash", Insertions: 17, Deletions: 3},
			{Hash: strings.Repeat("c", 40), Subject: "Bug 2222222 - Rework session restore", Insertions: 100, Deletions: 40},
		},
		Bugs: []model.EnrichedBug{
			{ID: 1111111, Markdown: "# Bug 1111111\nCrash when seeking in a video element."},
			{ID: 2222222, Markdown: "# Bug 2222222\nSession restore loses pinned tabs."},
		},
		TotalBugs:          2,
		SignificantCommits: 15,
	}
}

func TestBuildReleasePromptSections(t *testing.T) {
	prompt := BuildReleasePrompt(sampleInput(), 150000)

	for _, snippet := range []string{
		"analyze Firefox 143.0.1 release",
		"Total Commits: 3",
		"Contributors: 3",
		"Code Changes: +117/-43 lines",
		"## Significant Commits:",
		"[cccccccc](https://github.com/mozilla-firefox/firefox/commit/" + strings.Repeat("c", 40) + ")",
		"**[View on Bugzilla](https://bugzilla.mozilla.org/show_bug.cgi?id=1111111)**",
		"Session restore loses pinned tabs.",
		"Executive Summary",
		"IMPORTANT FORMATTING REQUIREMENTS",
	} {
		assert.Contains(t, prompt, snippet)
	}

	// Highest-churn commit listed first.
	assert.Less(t, strings.Index(prompt, "cccccccc"), strings.Index(prompt, "aaaaaaaa"))
}

func TestBuildReleasePromptDeterministic(t *testing.T) {
	first := BuildReleasePrompt(sampleInput(), 150000)
	second := BuildReleasePrompt(sampleInput(), 150000)
	assert.Equal(t, first, second)
}

func TestBuildReleasePromptRespectsCeiling(t *testing.T) {
	in := sampleInput()
	in.Bugs = []model.EnrichedBug{
		{ID: 1111111, Markdown: "# Bug 1111111\n" + strings.Repeat("security crash detail ", 500)},
		{ID: 2222222, Markdown: "# Bug 2222222\n" + strings.Repeat("more detail ", 500)},
	}
	in.TotalBugs = 2

	full := BuildReleasePrompt(in, 150000)
	require.Greater(t, len(full), 8000)

	ceiling := len(full) - 1000
	prompt := BuildReleasePrompt(in, ceiling)
	assert.LessOrEqual(t, len(prompt), ceiling)

	// The instruction sections survive; the cut comes out of the bugs.
	assert.Contains(t, prompt, "analyze Firefox 143.0.1 release")
	assert.Contains(t, prompt, "IMPORTANT FORMATTING REQUIREMENTS")
	assert.Contains(t, prompt, "omitted due to length limits")
	assert.NotContains(t, prompt, "more detail")
}

func TestBuildReleasePromptNotesOmittedBugs(t *testing.T) {
	in := sampleInput()
	in.TotalBugs = 40
	prompt := BuildReleasePrompt(in, 150000)
	assert.Contains(t, prompt, "38 additional bugs were fixed but not included above")
}

func TestTopEntriesOrdering(t *testing.T) {
	entries := topEntries(map[string]int{"dom": 5, "browser": 5, "gfx": 9, "js": 1}, 3)
	require.Len(t, entries, 3)
	assert.Equal(t, "gfx", entries[0].name)
	// Ties break alphabetically so output is stable.
	assert.Equal(t, "browser", entries[1].name)
	assert.Equal(t, "dom", entries[2].name)
}
