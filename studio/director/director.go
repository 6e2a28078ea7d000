package director

import (
	"context"
	"fmt"

	"github.com/scenesmith/scenesmith/common/logger"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

// ChatBackend is the conversational slice of the relay the director needs.
type ChatBackend interface {
	Chat(ctx context.Context, system string, history []relaymodel.ChatTurn, message string) (string, error)
	GenerateText(ctx context.Context, system string, prompt string) (string, error)
}

const intentInstruction = `You are the director's assistant inside a film studio app.
Interpret the user's message as exactly one action and answer with a single JSON object, no markdown:
{"kind":"generate-asset","prompt":"<image prompt>"} to create a character/location reference,
{"kind":"update-prompt","prompt":"<scene prompt>"} to rewrite the scene prompt,
{"kind":"switch-view","view":"<timeline|storyboard|assets|score>"} to navigate,
{"kind":"chat-response","text":"<reply>"} for anything else.`

const fallbackApology = "Sorry, I couldn't work out what to do with that. Could you rephrase it?"

// Director interprets free-form chat into one of the four structured
// actions by delegating to the backend and defensively parsing its answer.
type Director struct {
	backend ChatBackend
}

func NewDirector(backend ChatBackend) *Director {
	return &Director{backend: backend}
}

// Interpret always returns a well-formed Action. Backend failures and
// malformed responses both degrade to a chat-response apology; nothing
// propagates as an error to the caller.
func (d *Director) Interpret(ctx context.Context, history []relaymodel.ChatTurn, message string) relaymodel.Action {
	reply, err := d.backend.Chat(ctx, intentInstruction, history, message)
	if err != nil {
		logger.Warnf(ctx, "director chat failed, substituting apology: %s", err.Error())
		return relaymodel.Action{Kind: relaymodel.ActionChatResponse, Text: fallbackApology}
	}
	return ParseAction(reply)
}

// ParseAction decodes one backend reply into an Action. Anything that does
// not validate against the four kinds becomes a chat-response fallback.
// Parsing is idempotent: the same well-formed JSON always yields the same
// Action.
func ParseAction(raw string) relaymodel.Action {
	action := ParseOrDefault(raw, relaymodel.Action{})
	switch action.Kind {
	case relaymodel.ActionGenerateAsset, relaymodel.ActionUpdatePrompt:
		if action.Prompt != "" {
			return relaymodel.Action{Kind: action.Kind, Prompt: action.Prompt}
		}
	case relaymodel.ActionSwitchView:
		if action.View != "" {
			return relaymodel.Action{Kind: action.Kind, View: action.View}
		}
	case relaymodel.ActionChatResponse:
		if action.Text != "" {
			return relaymodel.Action{Kind: action.Kind, Text: action.Text}
		}
	}
	return relaymodel.Action{Kind: relaymodel.ActionChatResponse, Text: fallbackApology}
}

const scoreInstruction = `You are a film composer. Answer with a single JSON object, no markdown:
{"title":"...","description":"...","tempo":<bpm>,"instruments":["..."]}`

// ComposeScore asks the backend for score metadata matching the mood and
// substitutes the documented default when the answer is unusable.
func (d *Director) ComposeScore(ctx context.Context, mood string) relaymodel.ScoreMetadata {
	fallback := relaymodel.DefaultScoreMetadata()
	reply, err := d.backend.GenerateText(ctx, scoreInstruction,
		fmt.Sprintf("Describe a score for this mood: %s", mood))
	if err != nil {
		logger.Warnf(ctx, "score generation failed, substituting default: %s", err.Error())
		return fallback
	}
	score := ParseOrDefault(reply, fallback)
	if score.Title == "" || score.Tempo <= 0 {
		return fallback
	}
	if len(score.Instruments) == 0 {
		score.Instruments = fallback.Instruments
	}
	return score
}

const transitionInstruction = `You are a film editor suggesting shot transitions. Answer with a single JSON object, no markdown:
{"ideas":["...","...","..."]}`

type transitionEnvelope struct {
	Ideas []string `json:"ideas"`
}

// SuggestTransitions proposes short transition ideas following the given
// scene, falling back to the stock list on any failure.
func (d *Director) SuggestTransitions(ctx context.Context, sceneDescription string) []string {
	fallback := relaymodel.DefaultTransitionIdeas()
	reply, err := d.backend.GenerateText(ctx, transitionInstruction,
		fmt.Sprintf("The previous scene: %s\nSuggest three transitions to the next shot.", sceneDescription))
	if err != nil {
		logger.Warnf(ctx, "transition generation failed, substituting default: %s", err.Error())
		return fallback
	}
	envelope := ParseOrDefault(reply, transitionEnvelope{Ideas: fallback})
	if len(envelope.Ideas) == 0 {
		return fallback
	}
	return envelope.Ideas
}
