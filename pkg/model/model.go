package model

// Commit is one commit in the release range, parsed from git log output.
type Commit struct {
	Hash       string   `json:"hash"`
	Author     string   `json:"author"`
	Date       string   `json:"date"`
	Subject    string   `json:"subject"`
	Files      []string `json:"files,omitempty"`
	Insertions int      `json:"insertions"`
	Deletions  int      `json:"deletions"`
	BugIDs     []int    `json:"bug_ids,omitempty"`
}

// Churn is the total number of lines the commit touched.
func (c Commit) Churn() int {
	return c.Insertions + c.Deletions
}

// TagPair is the resolved git tag range for one release.
type TagPair struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// BugSource records where a bug ID was discovered.
type BugSource string

const (
	SourceCommit    BugSource = "commit"
	SourceMilestone BugSource = "milestone"
)

// BugReference is a bare bug ID plus its discovery source.
type BugReference struct {
	ID     int       `json:"id"`
	Source BugSource `json:"source"`
}

// EnrichedBug carries a bug's markdown detail and the priority score
// assigned before prompt assembly. Stub is set when the formatting tool
// could not produce detail and a placeholder was synthesized instead.
type EnrichedBug struct {
	ID       int     `json:"id"`
	Markdown string  `json:"markdown"`
	Score    float64 `json:"score"`
	Stub     bool    `json:"stub,omitempty"`
}

// CommitStats aggregates commit patterns for the prompt's overview section.
type CommitStats struct {
	TotalCommits      int            `json:"total_commits"`
	TotalFilesChanged int            `json:"total_files_changed"`
	TotalInsertions   int            `json:"total_insertions"`
	TotalDeletions    int            `json:"total_deletions"`
	Contributors      map[string]int `json:"contributors"`
	FileTypes         map[string]int `json:"file_types"`
	Components        map[string]int `json:"components"`
}
