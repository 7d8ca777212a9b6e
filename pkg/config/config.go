package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the policy knobs of the analysis: which keywords make a bug
// important, how much text the prompt may carry, and which model answers.
// Everything here is tuning, not structure.
type Config struct {
	// Model is the identifier sent to the LLM endpoint.
	Model string `yaml:"model"`
	// MaxTokens caps the model's response length.
	MaxTokens int `yaml:"max_tokens"`

	// KeywordWeights score bug markdown during prioritization. Each
	// case-insensitive occurrence of a keyword adds its weight.
	KeywordWeights map[string]float64 `yaml:"keyword_weights"`
	// BaselineScore is granted to every bug so unmatched bugs still rank
	// above nothing and keep their discovery order.
	BaselineScore float64 `yaml:"baseline_score"`

	// PromptCeiling is the hard character limit for the assembled prompt.
	PromptCeiling int `yaml:"prompt_ceiling"`
	// BugCharLimit caps a single bug's markdown before assembly.
	BugCharLimit int `yaml:"bug_char_limit"`
	// BugBudget caps the cumulative character length of the bug section.
	BugBudget int `yaml:"bug_budget"`
	// MaxBugs caps how many bugs enter the prompt.
	MaxBugs int `yaml:"max_bugs"`
	// SignificantCommits is how many top-churn commits the prompt lists.
	SignificantCommits int `yaml:"significant_commits"`

	// BatchSize is how many bug IDs are passed to bmo-to-md per invocation,
	// bounded to stay under argv limits.
	BatchSize int `yaml:"batch_size"`

	// BugzillaURL is the bug tracker's REST endpoint base.
	BugzillaURL string `yaml:"bugzilla_url"`
}

// Default returns the tuning the tool ships with. The keyword table and
// budgets mirror what has worked for Firefox release triage; override any of
// them with a --config file.
func Default() Config {
	return Config{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 4000,
		KeywordWeights: map[string]float64{
			"security":    10,
			"crash":       8,
			"critical":    8,
			"regression":  6,
			"performance": 4,
			"memory":      4,
			"leak":        4,
			"startup":     4,
			"feature":     3,
			"implement":   3,
			"devtools":    2,
		},
		BaselineScore:      1,
		PromptCeiling:      150000,
		BugCharLimit:       2000,
		BugBudget:          60000,
		MaxBugs:            15,
		SignificantCommits: 15,
		BatchSize:          50,
		BugzillaURL:        "https://bugzilla.mozilla.org/rest/bug",
	}
}

// Load reads a YAML file and overlays it on the defaults. Absent keys keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PromptCeiling <= 0 {
		return fmt.Errorf("prompt_ceiling must be positive, got %d", c.PromptCeiling)
	}
	if c.BugBudget <= 0 {
		return fmt.Errorf("bug_budget must be positive, got %d", c.BugBudget)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	return nil
}
