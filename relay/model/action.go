package model

// ActionKind tags the structured actions the director chat can resolve to.
type ActionKind string

const (
	ActionGenerateAsset ActionKind = "generate-asset"
	ActionUpdatePrompt  ActionKind = "update-prompt"
	ActionSwitchView    ActionKind = "switch-view"
	ActionChatResponse  ActionKind = "chat-response"
)

// Action is the tagged variant returned by the director intent parser.
// Prompt is set for generate-asset and update-prompt, View for switch-view,
// Text for chat-response.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Prompt string     `json:"prompt,omitempty"`
	View   string     `json:"view,omitempty"`
	Text   string     `json:"text,omitempty"`
}

// ChatTurn is one ordered turn of the director conversation.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ScoreMetadata describes a musical score for the current mood.
type ScoreMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tempo       int      `json:"tempo"`
	Instruments []string `json:"instruments"`
}

// DefaultScoreMetadata is substituted when the backend returns something
// unparseable.
func DefaultScoreMetadata() ScoreMetadata {
	return ScoreMetadata{
		Title:       "Untitled Theme",
		Description: "A simple atmospheric underscore.",
		Tempo:       90,
		Instruments: []string{"piano", "strings"},
	}
}

// DefaultTransitionIdeas is the fallback list of shot-transition ideas.
func DefaultTransitionIdeas() []string {
	return []string{"Hard cut", "Slow cross-dissolve", "Match cut on movement"}
}
