package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Create builds an LLM client for the chosen provider. Claude is the
// default; its key comes from the keyOverride (the --claude-key flag) or
// the CLAUDE_API_KEY environment variable. OpenAI reads OPENAI_API_KEY.
func Create(provider, model, keyOverride string, maxTokens int) (LLM, error) {
	switch Provider(strings.ToLower(provider)) {
	case ProviderClaude, "":
		apiKey := keyOverride
		if apiKey == "" {
			apiKey = os.Getenv("CLAUDE_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("Claude API key required: use --claude-key or set CLAUDE_API_KEY")
		}
		if model != "" {
			return NewClaudeWithModel(apiKey, model).WithMaxTokens(maxTokens), nil
		}
		return NewClaude(apiKey).WithMaxTokens(maxTokens), nil

	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if model != "" {
			return NewOpenAIWithModel(apiKey, model).WithMaxTokens(maxTokens), nil
		}
		return NewOpenAI(apiKey).WithMaxTokens(maxTokens), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: claude, openai)", provider)
	}
}
