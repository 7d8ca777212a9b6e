package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/padenot/fx-release-analyzer/pkg/analyzer"
	"github.com/padenot/fx-release-analyzer/pkg/bmo"
	"github.com/padenot/fx-release-analyzer/pkg/bugzilla"
	"github.com/padenot/fx-release-analyzer/pkg/config"
	"github.com/padenot/fx-release-analyzer/pkg/formatter"
	"github.com/padenot/fx-release-analyzer/pkg/gitlog"
	"github.com/padenot/fx-release-analyzer/pkg/llm"
	"github.com/padenot/fx-release-analyzer/pkg/release"
)

var (
	claudeKey   string
	bmoPath     string
	repoPath    string
	outputPath  string
	configPath  string
	llmProvider string
	llmModel    string
	verbose     bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fx-release-analyzer VERSION",
		Short: "AI-generated summary of a Firefox release",
		Long: `fx-release-analyzer correlates a Firefox release's git history with its
Bugzilla bug fixes and asks an LLM for a human-readable release summary.

Examples:
  # Analyze a major release
  fx-release-analyzer 143.0 --repo-path ~/src/mozilla-unified

  # Analyze a point release and save the summary
  fx-release-analyzer 143.0.1 --repo-path ~/src/mozilla-unified --output 143.0.1.md

Environment variables:
  CLAUDE_API_KEY  Claude API key (or use --claude-key)
  BMO_API_KEY     Bugzilla API key, consumed by bmo-to-md`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runAnalyze,
	}

	cmd.Flags().StringVar(&claudeKey, "claude-key", "", "Claude API key (or set CLAUDE_API_KEY)")
	cmd.Flags().StringVar(&bmoPath, "bmo-path", "bmo-to-md", "Path to the bmo-to-md executable")
	cmd.Flags().StringVar(&repoPath, "repo-path", ".", "Path to the Firefox git repository")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path (default: print to stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding keyword weights and budgets")
	cmd.Flags().StringVar(&llmProvider, "provider", "claude", "LLM provider (claude, openai)")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model override")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	version, err := release.Parse(args[0])
	if err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	model := cfg.Model
	if llmModel != "" {
		model = llmModel
	}

	// Fail before any work if the model client cannot be configured.
	client, err := llm.Create(llmProvider, model, claudeKey, cfg.MaxTokens)
	if err != nil {
		return err
	}

	if os.Getenv("BMO_API_KEY") == "" {
		formatter.PrintWarning("BMO_API_KEY not set; bmo-to-md will use anonymous Bugzilla access")
	}

	formatter.PrintHeader(version.String(), repoPath)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

	git := gitlog.Client{RepoPath: repoPath}
	isMozilla, err := git.Verify()
	if err != nil {
		return err
	}
	if !isMozilla {
		formatter.PrintWarning("this does not look like a Mozilla Firefox repository")
	}

	s.Suffix = " Resolving release tags..."
	s.Start()
	tags, err := git.ReleaseTags()
	if err != nil {
		s.Stop()
		return err
	}
	pair, err := release.ResolveTags(tags, version)
	s.Stop()
	if err != nil {
		return err
	}
	formatter.PrintSuccess(fmt.Sprintf("Release range %s..%s", pair.Previous, pair.Current))

	s.Suffix = " Reading commit history..."
	s.Start()
	commits, err := git.CommitsBetween(pair)
	s.Stop()
	if err != nil {
		return err
	}

	commitIDs := []int{}
	for i := range commits {
		commits[i].BugIDs = bugzilla.ExtractIDs(commits[i].Subject)
		commitIDs = bugzilla.Union(commitIDs, commits[i].BugIDs)
	}
	formatter.PrintSuccess(fmt.Sprintf("Found %d commits referencing %d bugs", len(commits), len(commitIDs)))

	s.Suffix = " Searching Bugzilla milestone..."
	s.Start()
	milestoneIDs, err := bugzilla.NewClient(cfg.BugzillaURL).SearchMilestone(version.Raw)
	s.Stop()
	if err != nil {
		// Non-fatal: the commit-derived bugs still make a useful analysis.
		formatter.PrintWarning(fmt.Sprintf("milestone search failed, continuing with commit bugs only: %v", err))
	}
	if verbose {
		formatter.PrintSuccess(fmt.Sprintf("Milestone search returned %d bugs", len(milestoneIDs)))
	}

	allIDs := bugzilla.Union(commitIDs, milestoneIDs)
	formatter.PrintSuccess(fmt.Sprintf("%d unique bugs to enrich", len(allIDs)))

	enricher := bmo.Enricher{Path: bmoPath, BatchSize: cfg.BatchSize}
	if err := enricher.Probe(); err != nil {
		formatter.PrintWarning(fmt.Sprintf("%v (install from https://github.com/padenot/bmo-to-md or pass --bmo-path)", err))
	}

	s.Suffix = " Fetching bug details with bmo-to-md..."
	s.Start()
	bugs, err := enricher.Enrich(allIDs)
	s.Stop()
	if err != nil {
		// Also non-fatal: failed batches degraded to stub entries.
		formatter.PrintWarning(err.Error())
	}
	formatter.PrintSuccess(fmt.Sprintf("Enriched %d bugs", len(bugs)))

	s.Suffix = " Analyzing with AI..."
	s.Start()
	result, err := analyzer.New(client, cfg).Analyze(version.String(), commits, bugs)
	s.Stop()
	if err != nil {
		return err
	}
	formatter.PrintSuccess("Analysis complete")

	return formatter.WriteResult(result, outputPath, version.String())
}
