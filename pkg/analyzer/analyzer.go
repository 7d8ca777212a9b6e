package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/padenot/fx-release-analyzer/pkg/config"
	"github.com/padenot/fx-release-analyzer/pkg/llm"
	"github.com/padenot/fx-release-analyzer/pkg/model"
	"github.com/padenot/fx-release-analyzer/pkg/prompts"
)

// Analyzer turns a release's commits and enriched bugs into one prompt and
// one model call.
type Analyzer struct {
	llm llm.LLM
	cfg config.Config
}

func New(l llm.LLM, cfg config.Config) *Analyzer {
	return &Analyzer{llm: l, cfg: cfg}
}

// Analyze assembles the release prompt and asks the model for the summary.
func (a *Analyzer) Analyze(version string, commits []model.Commit, bugs []model.EnrichedBug) (string, error) {
	prioritized := Prioritize(bugs, a.cfg)

	prompt := prompts.BuildReleasePrompt(prompts.Input{
		Version:            version,
		Stats:              CommitStats(commits),
		Commits:            commits,
		Bugs:               prioritized,
		TotalBugs:          len(bugs),
		SignificantCommits: a.cfg.SignificantCommits,
	}, a.cfg.PromptCeiling)

	text, err := a.llm.Chat(prompt)
	if err != nil {
		return "", fmt.Errorf("LLM chat: %w", err)
	}
	return text, nil
}

// CommitStats aggregates contributor, file-type and component histograms
// across the release's commits.
func CommitStats(commits []model.Commit) model.CommitStats {
	stats := model.CommitStats{
		TotalCommits: len(commits),
		Contributors: make(map[string]int),
		FileTypes:    make(map[string]int),
		Components:   make(map[string]int),
	}

	for _, commit := range commits {
		stats.TotalFilesChanged += len(commit.Files)
		stats.TotalInsertions += commit.Insertions
		stats.TotalDeletions += commit.Deletions
		stats.Contributors[commit.Author]++

		for _, path := range commit.Files {
			if dot := strings.LastIndex(path, "."); dot >= 0 && dot < len(path)-1 {
				ext := strings.ToLower(path[dot+1:])
				stats.FileTypes[ext]++
			}
			if slash := strings.Index(path, "/"); slash > 0 {
				stats.Components[path[:slash]]++
			}
		}
	}
	return stats
}

// Score rates a bug's markdown against the keyword weight table: each
// case-insensitive occurrence adds its weight, every bug gets the baseline,
// and longer reports earn a small bonus as a proxy for complexity.
func Score(markdown string, cfg config.Config) float64 {
	lower := strings.ToLower(markdown)
	score := cfg.BaselineScore
	for keyword, weight := range cfg.KeywordWeights {
		score += weight * float64(strings.Count(lower, strings.ToLower(keyword)))
	}
	if bonus := float64(len(markdown)) / 1000; bonus > 3 {
		score += 3
	} else {
		score += bonus
	}
	return score
}

// Prioritize scores bugs, sorts them by descending score (stable, so equal
// scores keep discovery order), caps each bug's markdown, then truncates
// the list against the count and cumulative character budgets, dropping
// lowest-priority bugs first.
func Prioritize(bugs []model.EnrichedBug, cfg config.Config) []model.EnrichedBug {
	scored := make([]model.EnrichedBug, len(bugs))
	copy(scored, bugs)
	for i := range scored {
		scored[i].Score = Score(scored[i].Markdown, cfg)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if cfg.MaxBugs > 0 && len(scored) > cfg.MaxBugs {
		scored = scored[:cfg.MaxBugs]
	}

	var kept []model.EnrichedBug
	used := 0
	for _, bug := range scored {
		if cfg.BugCharLimit > 0 && len(bug.Markdown) > cfg.BugCharLimit {
			bug.Markdown = bug.Markdown[:cfg.BugCharLimit] + "\n...(truncated)"
		}
		if cfg.BugBudget > 0 && used+len(bug.Markdown) > cfg.BugBudget {
			break
		}
		used += len(bug.Markdown)
		kept = append(kept, bug)
	}
	return kept
}
