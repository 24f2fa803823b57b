package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// decodeValidated parses model output into out after validating it against
// schema. Models wrap JSON in markdown fences or commentary often enough
// that parsing tries progressively more aggressive recovery.
func decodeValidated(content string, schema *jsonschema.Schema, out any) error {
	raw, err := parseJSON(content)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode model output: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}

	return json.Unmarshal(raw, out)
}

// parseJSON extracts a JSON document from model output, recovering from
// markdown code fences and surrounding prose.
func parseJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty model output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		var parsed any
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("failed to parse JSON from model output")
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONCandidate(content string) string {
	trimmed := strings.TrimSpace(content)

	start := strings.Index(trimmed, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(trimmed, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(trimmed[start : end+1])
}
