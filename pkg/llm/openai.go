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

const openAIBaseURL = "https://api.openai.com/v1/chat/completions"

type OpenAI struct {
	apiKey    string
	client    *http.Client
	model     string
	maxTokens int
	baseURL   string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithModel(apiKey, "gpt-4o")
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 60 * time.Second},
		model:     model,
		maxTokens: 4000,
		baseURL:   openAIBaseURL,
	}
}

// WithMaxTokens overrides the response token cap.
func (o *OpenAI) WithMaxTokens(n int) *OpenAI {
	if n > 0 {
		o.maxTokens = n
	}
	return o
}

func (o *OpenAI) Chat(prompt string) (string, error) {
	body := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens": o.maxTokens,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", o.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))

	resp, err := o.client.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			return "", &TimeoutError{Provider: "OpenAI", Err: err}
		}
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: "OpenAI", Status: resp.StatusCode, Message: errorMessage(respBytes)}
	}

	var openAIResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &openAIResp); err != nil {
		return "", err
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return openAIResp.Choices[0].Message.Content, nil
}
