package llm

import "fmt"

// LLM is a hosted model endpoint that answers one prompt with one text
// response. Exactly one Chat call is made per run; there is no retry layer.
type LLM interface {
	Chat(prompt string) (string, error)
}

// APIError is a non-2xx response from the model endpoint. Fatal: the model
// call is the terminal step, there is nothing to degrade to.
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API Error (status %d): %s", e.Provider, e.Status, e.Message)
}

// TimeoutError means the model call exceeded the fixed request ceiling.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s API timeout: %v", e.Provider, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
