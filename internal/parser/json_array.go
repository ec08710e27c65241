package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// arrayPattern matches from the first '[' to the last ']' in the text.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ExtractStringArray locates a JSON array of strings in free-form model
// output. The span runs from the first '[' to the last ']', which tolerates
// prose or fences around the array.
//
// Returns (nil, nil) if no bracketed span exists, and an error if the span
// is not a JSON array of strings.
func ExtractStringArray(text string) ([]string, error) {
	match := arrayPattern.FindString(text)
	if match == "" {
		return nil, nil
	}

	var result []string
	if err := json.Unmarshal([]byte(match), &result); err != nil {
		return nil, fmt.Errorf("string array: %w", err)
	}
	return result, nil
}

// StripCodeFences removes a leading ```html or ``` fence and a trailing ```
// fence from model output, trimming whitespace at the cut points.
func StripCodeFences(text string) string {
	out := strings.TrimSpace(text)
	if strings.HasPrefix(out, "```html") {
		out = strings.TrimLeft(out[len("```html"):], " \t\r\n")
	}
	if strings.HasPrefix(out, "```") {
		out = strings.TrimLeft(out[len("```"):], " \t\r\n")
	}
	if strings.HasSuffix(out, "```") {
		out = strings.TrimRight(out[:len(out)-len("```")], " \t\r\n")
	}
	return out
}
