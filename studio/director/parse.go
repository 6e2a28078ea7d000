package director

import (
	"encoding/json"

	"github.com/scenesmith/scenesmith/common"
)

// ParseOrDefault decodes a backend JSON answer into T, tolerating markdown
// fences and surrounding prose. On any failure it returns the fallback:
// malformed responses are recovered here with a deterministic value, never
// propagated as an error past this boundary.
func ParseOrDefault[T any](raw string, fallback T) T {
	candidate := common.StripCodeFence(raw)

	var out T
	if err := json.Unmarshal([]byte(candidate), &out); err == nil {
		return out
	}
	for _, object := range common.ExtractJSONObjects(candidate) {
		if err := json.Unmarshal([]byte(object), &out); err == nil {
			return out
		}
	}
	return fallback
}
