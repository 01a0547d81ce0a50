package advisor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

const (
	rawOutputLimit = 800
	rawStepType    = "raw_ai_output"
)

var errNotAnArray = errors.New("AI response could not be parsed into a valid path array")

type PathStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// parseLearningPath strips optional code fences, decodes a JSON array and
// renumbers its steps from 1, filling defaults for missing fields.
func parseLearningPath(raw string) ([]PathStep, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var items []interface{}
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errNotAnArray
	}

	steps := make([]PathStep, 0, len(items))
	for i, item := range items {
		fields, _ := item.(map[string]interface{})
		steps = append(steps, PathStep{
			Step:        i + 1,
			Title:       textOr(fields["title"], "Untitled Step"),
			Description: textOr(fields["description"], "No description provided."),
			Type:        textOr(fields["type"], "general_suggestion"),
		})
	}
	return steps, nil
}

// looksLikeProse reports a reply that is long enough and carries no JSON brackets.
func looksLikeProse(raw string) bool {
	return len(raw) > 50 && !strings.ContainsAny(raw, "{[")
}

// rawStep wraps unparseable output as a single degraded step.
func rawStep(raw string) []PathStep {
	desc := raw
	if utf8.RuneCountInString(raw) > rawOutputLimit {
		desc = string([]rune(raw)[:rawOutputLimit]) + "..."
	}
	return []PathStep{{
		Step:        1,
		Title:       "AI Suggestion (Processing Issue)",
		Description: desc,
		Type:        rawStepType,
	}}
}

// textOr treats empty and zero values as missing.
func textOr(v interface{}, def string) string {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		if t == "" {
			return def
		}
		return t
	case bool:
		if !t {
			return def
		}
		return "true"
	case float64:
		if t == 0 {
			return def
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}
