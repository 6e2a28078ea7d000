package compositor

import (
	"fmt"
	"strings"

	"github.com/scenesmith/scenesmith/studio/store"
)

// Compose merges raw user text with the selected style and the continuity
// profile into one final prompt. The order is fixed and significant, since
// it determines emphasis in the generated footage: style fragment first,
// then the user text, then one character-reference sentence per locked
// asset, then the lighting sentence. Additions are strictly additive; with
// no style, no locked assets and no lighting lock the result is the user
// text unchanged.
func Compose(userText string, style *store.FilmStyle, profile store.ContinuityProfile, lockedAssets []*store.Asset) string {
	prompt := userText
	if style != nil && style.Fragment != "" {
		prompt = style.Fragment + " " + prompt
	}
	for _, asset := range lockedAssets {
		prompt += fmt.Sprintf(" Character Reference: %s.", asset.Prompt)
	}
	if profile.Lighting != "" {
		prompt += fmt.Sprintf(" Lighting: %s.", profile.Lighting)
	}
	return prompt
}

// Horizontal zone thresholds on the storyboard canvas x coordinate, and the
// depth threshold on y.
const (
	leftThreshold   = 150.0
	centerThreshold = 300.0
	depthThreshold  = 150.0
)

// PositionPhrase buckets a canvas position into its horizontal and depth
// zones.
func PositionPhrase(x, y float64) (horizontal string, vertical string) {
	switch {
	case x < leftThreshold:
		horizontal = "on the left"
	case x < centerThreshold:
		horizontal = "in the center"
	default:
		horizontal = "on the right"
	}
	if y < depthThreshold {
		vertical = "in the background/top"
	} else {
		vertical = "in the foreground/bottom"
	}
	return horizontal, vertical
}

// ItemPhrase renders one storyboard placement as prose.
func ItemPhrase(assetPrompt, note string, x, y float64) string {
	horizontal, vertical := PositionPhrase(x, y)
	if note == "" {
		note = "no notes"
	}
	return fmt.Sprintf("%s (%s) located %s and %s", assetPrompt, note, horizontal, vertical)
}

// DescribeItems renders every resolvable storyboard item. Items whose asset
// has been removed are skipped.
func DescribeItems(items []*store.StoryboardItem, lookup func(id string) (*store.Asset, bool)) []string {
	var phrases []string
	for _, item := range items {
		asset, ok := lookup(item.AssetId)
		if !ok {
			continue
		}
		phrases = append(phrases, ItemPhrase(asset.Prompt, item.Note, item.X, item.Y))
	}
	return phrases
}

// JoinPhrases is the local fallback composition used when the backend
// cannot produce a fluid description.
func JoinPhrases(phrases []string) string {
	return strings.Join(phrases, "; ")
}
