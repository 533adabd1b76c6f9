package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	maxRetries      = 3
	baseRetryDelay  = 2 * time.Second
	maxRetryDelay   = 30 * time.Second
	jsonInstruction = "\n\nIMPORTANT: You MUST respond with ONLY valid JSON. Do not include any markdown markers (```json, ```, etc.). Respond with raw JSON only."
)

// GenerationError classifies gateway failures. Transient errors (rate limit,
// quota, upstream 5xx) are retried; fatal ones (auth, malformed output)
// propagate immediately.
type GenerationError struct {
	Transient bool
	Err       error
}

func (e *GenerationError) Error() string {
	kind := "fatal"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("generation error (%s): %v", kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a retryable generation failure.
func IsTransient(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Transient
}

type Client struct {
	Model   string
	BaseURL string
	client  *openai.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		Model:   model,
		BaseURL: baseURL,
		client:  openai.NewClientWithConfig(config),
	}
}

// GenerateJSON sends a prompt and returns the raw JSON text of the response.
// The raw-JSON-only instruction is appended to every prompt and any code
// fences the model emits anyway are stripped before returning. Transient
// failures are retried with bounded exponential backoff.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", &GenerationError{Err: fmt.Errorf("client not initialized")}
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay << (attempt - 1)
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			select {
			case <-ctx.Done():
				return "", &GenerationError{Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		resp, err := c.client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: c.Model,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleUser,
						Content: prompt + jsonInstruction,
					},
				},
				Temperature: 0.3,
				TopP:        0.95,
				MaxTokens:   4096,
				ResponseFormat: &openai.ChatCompletionResponseFormat{
					Type: openai.ChatCompletionResponseFormatTypeJSONObject,
				},
			},
		)
		if err != nil {
			if isRetryable(err) {
				lastErr = err
				continue
			}
			return "", &GenerationError{Err: err}
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", &GenerationError{Err: fmt.Errorf("model returned empty response")}
		}

		return StripFences(resp.Choices[0].Message.Content), nil
	}

	return "", &GenerationError{Transient: true, Err: fmt.Errorf("retries exhausted: %w", lastErr)}
}

// StripFences removes markdown code fences around a JSON payload. The prompt
// forbids fences but models add them anyway often enough to warrant this.
func StripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
