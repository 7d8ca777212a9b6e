package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const claudeBaseURL = "https://api.anthropic.com/v1/messages"

type Claude struct {
	apiKey    string
	client    *http.Client
	model     string
	maxTokens int
	baseURL   string
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, "claude-sonnet-4-20250514")
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 60 * time.Second},
		model:     model,
		maxTokens: 4000,
		baseURL:   claudeBaseURL,
	}
}

// WithMaxTokens overrides the response token cap.
func (c *Claude) WithMaxTokens(n int) *Claude {
	if n > 0 {
		c.maxTokens = n
	}
	return c
}

func (c *Claude) Chat(prompt string) (string, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens": c.maxTokens,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			return "", &TimeoutError{Provider: "Claude", Err: err}
		}
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: "Claude", Status: resp.StatusCode, Message: errorMessage(respBytes)}
	}

	// Minimal struct to pull out the content text.
	var claudeResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", err
	}
	if claudeResp.Error.Message != "" {
		return "", &APIError{Provider: "Claude", Status: resp.StatusCode, Message: claudeResp.Error.Message}
	}
	if len(claudeResp.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}
	return claudeResp.Content[0].Text, nil
}

// errorMessage pulls the error text out of an API error body, falling back
// to the raw body when it is not the expected JSON shape.
func errorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
