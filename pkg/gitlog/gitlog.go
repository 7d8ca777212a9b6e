package gitlog

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/padenot/fx-release-analyzer/pkg/model"
)

// GitError wraps a failed git invocation. Any GitError is fatal: without a
// readable repository the analysis has no input.
type GitError struct {
	Op  string
	Err error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// Client runs git against one repository checkout. All commands go through
// `git -C <path>` so the working directory never matters.
type Client struct {
	RepoPath string
}

// Verify checks that the path is a git repository and reports whether it
// looks like a Mozilla checkout. A non-Mozilla remote is only worth a
// warning; a missing repository is a hard failure.
func (c Client) Verify() (isMozilla bool, err error) {
	out, err := c.run("remote", "-v")
	if err != nil {
		return false, &GitError{Op: "remote -v", Err: fmt.Errorf("not a git repository: %s", c.RepoPath)}
	}
	return strings.Contains(strings.ToLower(out), "mozilla"), nil
}

// ReleaseTags lists the repository's Firefox release tags.
func (c Client) ReleaseTags() ([]string, error) {
	out, err := c.run("tag", "-l", "*FIREFOX*RELEASE*")
	if err != nil {
		return nil, &GitError{Op: "tag -l", Err: err}
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// CommitsBetween returns the commits in prev..current with per-file change
// counts, in the order git log produces them.
func (c Client) CommitsBetween(pair model.TagPair) ([]model.Commit, error) {
	rangeSpec := fmt.Sprintf("%s..%s", pair.Previous, pair.Current)
	out, err := c.run("log", rangeSpec, "--format=%H|%an|%ad|%s", "--date=iso", "--numstat")
	if err != nil {
		return nil, &GitError{Op: "log " + rangeSpec, Err: err}
	}
	return parseLog(out), nil
}

func (c Client) run(args ...string) (string, error) {
	full := append([]string{"-C", c.RepoPath}, args...)
	out, err := exec.Command("git", full...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// parseLog turns `git log --format=%H|%an|%ad|%s --numstat` output into
// commits. Header lines carry four pipe-separated fields; the numstat lines
// that follow are tab-separated "<added>\t<deleted>\t<path>" triples, with
// "-" counts for binary files.
func parseLog(out string) []model.Commit {
	var commits []model.Commit
	var current *model.Commit

	for _, line := range strings.Split(out, "\n") {
		if fields := strings.SplitN(line, "|", 4); len(fields) == 4 && len(fields[0]) == 40 && isHex(fields[0]) {
			if current != nil {
				commits = append(commits, *current)
			}
			current = &model.Commit{
				Hash:    fields[0],
				Author:  fields[1],
				Date:    fields[2],
				Subject: fields[3],
			}
			continue
		}

		if current == nil {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		added := statCount(parts[0])
		deleted := statCount(parts[1])
		path := strings.TrimSpace(parts[2])
		if path == "" {
			continue
		}
		current.Insertions += added
		current.Deletions += deleted
		current.Files = append(current.Files, path)
	}
	if current != nil {
		commits = append(commits, *current)
	}
	return commits
}

func statCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0 // "-" for binary files
	}
	return n
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
