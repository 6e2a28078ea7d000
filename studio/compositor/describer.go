package compositor

import (
	"context"
	"fmt"
	"strings"

	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/common/logger"
	"github.com/scenesmith/scenesmith/studio/store"
)

// TextBackend is the one generation capability the describer needs.
type TextBackend interface {
	GenerateText(ctx context.Context, system string, prompt string) (string, error)
}

const describerInstruction = "You are a cinematographer turning spatial shot notes into one cohesive scene description. Respond with a single fluid paragraph and nothing else."

// Describer condenses storyboard placements into one cinematic scene
// description. This is the one place where composition itself is delegated
// to the generative backend; any failure degrades to the plain local join
// of the item phrases, never an error.
type Describer struct {
	Backend    TextBackend
	WordBudget int
}

func NewDescriber(backend TextBackend) *Describer {
	return &Describer{Backend: backend, WordBudget: config.StoryboardWordBudget}
}

// Describe returns a scene description for the given storyboard items, or
// "" when the board is empty.
func (d *Describer) Describe(ctx context.Context, items []*store.StoryboardItem, lookup func(id string) (*store.Asset, bool)) string {
	phrases := DescribeItems(items, lookup)
	if len(phrases) == 0 {
		return ""
	}
	fallback := JoinPhrases(phrases)

	budget := d.WordBudget
	if budget <= 0 {
		budget = 60
	}
	prompt := fmt.Sprintf(
		"Combine these storyboard placements into one cinematic scene description of at most %d words:\n%s",
		budget, strings.Join(phrases, "\n"))

	description, err := d.Backend.GenerateText(ctx, describerInstruction, prompt)
	if err != nil {
		logger.Warnf(ctx, "storyboard describer fell back to local join: %s", err.Error())
		return fallback
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return fallback
	}
	return description
}
