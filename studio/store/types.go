package store

import (
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

// AssetType is the semantic kind of a generated reference still.
type AssetType string

const (
	AssetCharacter   AssetType = "character"
	AssetEnvironment AssetType = "environment"
	AssetProp        AssetType = "prop"
)

// Asset is a generated reference image. The media payload is owned
// exclusively by the asset and never mutated after creation.
type Asset struct {
	Id        string                  `json:"id"`
	Prompt    string                  `json:"prompt"`
	Type      AssetType               `json:"type"`
	Media     relaymodel.MediaPayload `json:"media"`
	CreatedAt int64                   `json:"created_at"`
}

// MediaPath is the locally addressable handle the UI displays.
func (a *Asset) MediaPath() string {
	return "/api/media/assets/" + a.Id
}

// Scene is a generated video clip occupying one timeline slot. Created only
// on successful completion of a generation request, never mutated.
type Scene struct {
	Id        string                  `json:"id"`
	Prompt    string                  `json:"prompt"`
	Media     relaymodel.MediaPayload `json:"media"`
	VideoRef  relaymodel.VideoRef     `json:"video_ref"`
	CreatedAt int64                   `json:"created_at"`
}

func (s *Scene) MediaPath() string {
	return "/api/media/scenes/" + s.Id
}

// StyleCategory groups film styles in the style picker.
type StyleCategory string

const (
	CategoryCinematic StyleCategory = "Cinematic"
	CategoryAnimation StyleCategory = "Animation"
	CategoryVintage   StyleCategory = "Vintage"
	CategoryCustom    StyleCategory = "Custom"
)

// FilmStyle is a named visual style whose Fragment is prepended verbatim to
// generation prompts when selected.
type FilmStyle struct {
	Id          string        `json:"id"`
	Name        string        `json:"name"`
	Category    StyleCategory `json:"category"`
	Description string        `json:"description"`
	Fragment    string        `json:"fragment"`
}

// BuiltinStyles are immutable; custom styles are appended at runtime.
var BuiltinStyles = []FilmStyle{
	{
		Id:          "noir",
		Name:        "Film Noir",
		Category:    CategoryCinematic,
		Description: "High-contrast black and white with deep shadows.",
		Fragment:    "Black and white film noir, hard key light, deep shadows, venetian blind patterns, 1940s atmosphere.",
	},
	{
		Id:          "epic",
		Name:        "Epic Blockbuster",
		Category:    CategoryCinematic,
		Description: "Anamorphic widescreen with teal and orange grading.",
		Fragment:    "Epic cinematic blockbuster look, anamorphic lens flares, teal and orange color grade, sweeping camera movement.",
	},
	{
		Id:          "documentary",
		Name:        "Documentary",
		Category:    CategoryCinematic,
		Description: "Handheld naturalism with available light.",
		Fragment:    "Handheld documentary style, natural available light, shallow depth of field, observational framing.",
	},
	{
		Id:          "anime",
		Name:        "Anime",
		Category:    CategoryAnimation,
		Description: "Cel-shaded 2D animation with painted backgrounds.",
		Fragment:    "2D anime style, cel shading, hand-painted backgrounds, expressive character animation.",
	},
	{
		Id:          "stopmotion",
		Name:        "Stop Motion",
		Category:    CategoryAnimation,
		Description: "Miniature sets with visible handcrafted texture.",
		Fragment:    "Stop motion animation, handcrafted miniature sets, subtle frame jitter, tactile clay and fabric textures.",
	},
	{
		Id:          "super8",
		Name:        "Super 8",
		Category:    CategoryVintage,
		Description: "Grainy home-movie film stock from the 1970s.",
		Fragment:    "Vintage Super 8 film, heavy grain, warm faded colors, light leaks, 1970s home movie feel.",
	},
	{
		Id:          "technicolor",
		Name:        "Technicolor",
		Category:    CategoryVintage,
		Description: "Saturated three-strip color from Hollywood's golden age.",
		Fragment:    "Three-strip Technicolor look, richly saturated primaries, soft studio lighting, golden age Hollywood staging.",
	},
}

// LightingVocabulary is the fixed set of atmosphere locks.
var LightingVocabulary = []string{
	"golden hour",
	"blue hour",
	"neon night",
	"overcast daylight",
	"candlelight",
	"harsh noon sun",
}

func IsValidLighting(lock string) bool {
	if lock == "" {
		return true
	}
	for _, v := range LightingVocabulary {
		if v == lock {
			return true
		}
	}
	return false
}

// ContinuityProfile describes enforced cross-scene consistency: asset ids
// whose prompts are injected into every subsequent prompt, plus at most one
// lighting lock.
type ContinuityProfile struct {
	CastLock []string `json:"cast_lock"`
	Lighting string   `json:"lighting"`
}

// StoryboardItem is a positioned asset reference on the 2D canvas. It only
// ever feeds the storyboard describer; it is never persisted into a Scene.
type StoryboardItem struct {
	Id      string  `json:"id"`
	AssetId string  `json:"asset_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Note    string  `json:"note"`
}

// Phase is the lifecycle phase of the single current generation slot.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)
