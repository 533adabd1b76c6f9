package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tradelingo/tradelingo-be/internal/pkg/llm"
)

// Generator is the single gateway every pipeline stage uses for text
// generation. Satisfied by llm.Client; faked in tests.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// parseObject strips code fences and unmarshals a JSON object.
func parseObject(raw string) (map[string]any, error) {
	clean := llm.StripFences(raw)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("model output is not valid json: %w", err)
	}
	return parsed, nil
}

// The model's key set is a contract, not a guarantee. Every read of parsed
// output goes through these accessors so a missing or mistyped key degrades
// to a default instead of a panic.

func getString(fields map[string]any, key, fallback string) string {
	if v, ok := fields[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(fields map[string]any, key string, fallback float64) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(fields map[string]any, key string, fallback bool) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return fallback
}

func getStringList(fields map[string]any, key string) []string {
	raw, ok := fields[key].([]any)
	if !ok {
		return nil
	}
	list := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

// toneFor maps the classifier's emotional state to the register the skill
// prompts ask for.
func toneFor(emotionalState string) string {
	switch strings.ToLower(emotionalState) {
	case "frustrated", "anxious", "stressed", "upset", "overwhelmed":
		return "calm, reassuring, and supportive"
	case "excited", "confident", "curious":
		return "encouraging and energetic"
	default:
		return "friendly and educational"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
