package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/padenot/fx-release-analyzer/pkg/model"
)

const (
	commitURLBase = "https://github.com/mozilla-firefox/firefox/commit/"
	bugURLBase    = "https://bugzilla.mozilla.org/show_bug.cgi?id="

	truncationNotice = "\n(Note: some bug details were omitted due to length limits)\n"
)

// Input is everything the release prompt is assembled from. Bugs are
// expected to arrive already prioritized and capped per bug.
type Input struct {
	Version string
	Stats   model.CommitStats
	Commits []model.Commit
	Bugs    []model.EnrichedBug

	// TotalBugs is the pre-truncation bug count, so the model is told how
	// much was left out.
	TotalBugs int

	// SignificantCommits is how many top-churn commits to list.
	SignificantCommits int
}

// BuildReleasePrompt assembles the analysis prompt: instruction preamble
// with release statistics, significant commits, then the bug markdown. The
// result never exceeds ceiling characters; when the bug section has to be
// cut, whole bug blocks are dropped from the end and a truncation notice is
// appended. The instruction sections are never cut.
func BuildReleasePrompt(in Input, ceiling int) string {
	head := buildHead(in)
	tail := buildTail()
	blocks := buildBugBlocks(in.Bugs)

	var omitted int
	if in.TotalBugs > len(in.Bugs) {
		omitted = in.TotalBugs - len(in.Bugs)
	}

	bugSection := joinBugSection(blocks, omitted)
	for len(head)+len(bugSection)+len(tail) > ceiling && len(blocks) > 0 {
		blocks = blocks[:len(blocks)-1]
		omitted++
		bugSection = joinBugSection(blocks, omitted) + truncationNotice
	}

	return head + bugSection + tail
}

func buildHead(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, `I need you to analyze Firefox %s release and provide a comprehensive summary of what was included in this release.

## Release Overview
Firefox Version: %s
Total Commits: %d
Total Bug Fixes: %d
Contributors: %d
Files Changed: %d
Code Changes: +%d/-%d lines

`, in.Version, in.Version,
		in.Stats.TotalCommits, in.TotalBugs, len(in.Stats.Contributors),
		in.Stats.TotalFilesChanged, in.Stats.TotalInsertions, in.Stats.TotalDeletions)

	b.WriteString("## Top Components (by commit activity):\n")
	for _, entry := range topEntries(in.Stats.Components, 10) {
		fmt.Fprintf(&b, "- %s: %d files modified\n", entry.name, entry.count)
	}

	b.WriteString("\n## File Type Distribution:\n")
	for _, entry := range topEntries(in.Stats.FileTypes, 8) {
		fmt.Fprintf(&b, "- .%s: %d files\n", entry.name, entry.count)
	}

	b.WriteString("\n## Significant Commits:\n")
	for _, commit := range significantCommits(in.Commits, in.SignificantCommits) {
		subject := commit.Subject
		if len(subject) > 120 {
			subject = subject[:120] + "..."
		}
		fmt.Fprintf(&b, "- [%s](%s%s): %s (%d lines changed)\n",
			shortHash(commit.Hash), commitURLBase, commit.Hash, subject, commit.Churn())
	}

	b.WriteString("\n## Detailed Bug Information (Markdown Format):\n\n")
	return b.String()
}

func buildTail() string {
	return `
Please provide a comprehensive Firefox release analysis including:

1. **Executive Summary**: What Firefox users can expect from this release - highlight the most impactful changes
2. **Major Features and Improvements**: Key new functionality or enhancements based on the bug fixes and commits
3. **Security and Stability**: Critical bug fixes, security improvements, crash fixes - reference specific bugs where relevant with links
4. **Performance**: Changes that impact browser performance, memory usage, startup time, etc.
5. **Web Platform**: New web standards support, API changes, developer features
6. **User Interface**: UI/UX improvements and changes
7. **Developer Tools**: Updates to Firefox DevTools
8. **Platform Support**: Changes for different operating systems (Windows, macOS, Linux, mobile)
9. **Under the Hood**: Technical improvements, refactoring, code quality improvements
10. **Notable Bug Fixes**: Highlight particularly important or long-standing issues that were resolved

IMPORTANT FORMATTING REQUIREMENTS:
- When referencing bugs, use this format: [Bug 1234567](https://bugzilla.mozilla.org/show_bug.cgi?id=1234567)
- When referencing commits, use this format: [abcd1234](https://github.com/mozilla-firefox/firefox/commit/abcd1234567890...)
- Include clickable links for all bug and commit references
- Use markdown formatting throughout

Focus on translating technical changes into user-facing benefits. Use the detailed bug information provided to give specific examples and context.

Group related changes together and explain the broader themes or initiatives they represent. If you see patterns suggesting major feature work, security initiatives, or technical improvements, call those out specifically.

Make this analysis valuable for both end users who want to know what's new and developers who need to understand the technical changes. Ensure all bug and commit references are properly linked.`
}

func buildBugBlocks(bugs []model.EnrichedBug) []string {
	blocks := make([]string, 0, len(bugs))
	for _, bug := range bugs {
		markdown := bug.Markdown
		bugURL := fmt.Sprintf("%s%d", bugURLBase, bug.ID)
		if !strings.Contains(markdown, bugURL) {
			markdown = fmt.Sprintf("**[View on Bugzilla](%s)**\n\n%s", bugURL, markdown)
		}
		blocks = append(blocks, markdown+"\n\n---\n\n")
	}
	return blocks
}

func joinBugSection(blocks []string, omitted int) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(block)
	}
	if omitted > 0 {
		fmt.Fprintf(&b, "(Note: %d additional bugs were fixed but not included above due to length constraints)\n", omitted)
	}
	return b.String()
}

// significantCommits returns the n highest-churn commits, original order
// preserved on equal churn.
func significantCommits(commits []model.Commit, n int) []model.Commit {
	sorted := make([]model.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Churn() > sorted[j].Churn()
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

type countEntry struct {
	name  string
	count int
}

// topEntries sorts a histogram by count descending, name ascending on ties
// so prompt assembly stays deterministic.
func topEntries(m map[string]int, n int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for name, count := range m {
		entries = append(entries, countEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
