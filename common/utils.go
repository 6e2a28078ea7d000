package common

import (
	"strings"
)

// StripCodeFence removes a surrounding markdown code fence, with or without
// a language tag. Generative backends frequently wrap JSON answers in one
// even when told not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		firstLine := strings.TrimSpace(s[:idx])
		// A language tag is a single short word, e.g. "json"
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}[]\"") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSONObjects returns every balanced top-level JSON object found in
// s, skipping any surrounding prose.
func ExtractJSONObjects(s string) []string {
	var objects []string
	s = strings.TrimSpace(s)
	balance := 0
	start := -1

	for i, r := range s {
		switch r {
		case '{':
			if balance == 0 {
				start = i
			}
			balance++
		case '}':
			if balance > 0 {
				balance--
				if balance == 0 && start != -1 {
					objects = append(objects, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return objects
}
