package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseSectionJSON decodes a language-model response into a SectionMapping.
// The response is treated as an untrusted external contract: it must be a
// JSON object, values for canonical keys must be strings, and at least one
// canonical key must be present. Keys outside the canonical set are
// ignored. Any violation returns an error and no mapping — callers fall
// back rather than accept partial data.
func ParseSectionJSON(data []byte) (SectionMapping, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGenerationFailure)
	}

	// Models occasionally wrap the object in a markdown code fence.
	text = stripCodeFence(text)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}

	mapping := make(SectionMapping)
	for key, value := range raw {
		if !IsSectionKey(key) {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: key %q is not a string", ErrGenerationFailure, key)
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		mapping[key] = s
	}

	if len(mapping) == 0 {
		return nil, fmt.Errorf("%w: no recognised section keys", ErrGenerationFailure)
	}

	return mapping, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
