package compositor

import (
	"testing"

	"github.com/scenesmith/scenesmith/studio/store"
)

func TestComposeIdentity(t *testing.T) {
	got := Compose("a lone rider crosses the dunes", nil, store.ContinuityProfile{}, nil)
	if got != "a lone rider crosses the dunes" {
		t.Errorf("Compose() = %q, want the user text unchanged", got)
	}
}

func TestComposeOrder(t *testing.T) {
	style := &store.FilmStyle{Id: "noir", Fragment: "Black and white film noir."}
	locked := []*store.Asset{
		{Id: "a1", Prompt: "a detective in a trench coat"},
		{Id: "a2", Prompt: "a rain-soaked alley"},
	}
	profile := store.ContinuityProfile{Lighting: "neon night"}

	got := Compose("she lights a cigarette", style, profile, locked)
	want := "Black and white film noir. she lights a cigarette" +
		" Character Reference: a detective in a trench coat." +
		" Character Reference: a rain-soaked alley." +
		" Lighting: neon night."
	if got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestComposeEmptyFragmentSkipped(t *testing.T) {
	style := &store.FilmStyle{Id: "blank"}
	got := Compose("wide shot of the harbor", style, store.ContinuityProfile{}, nil)
	if got != "wide shot of the harbor" {
		t.Errorf("Compose() = %q, want no leading space from an empty fragment", got)
	}
}

func TestPositionPhrase(t *testing.T) {
	tests := []struct {
		name           string
		x, y           float64
		wantHorizontal string
		wantVertical   string
	}{
		{"left background", 100, 100, "on the left", "in the background/top"},
		{"right foreground", 350, 400, "on the right", "in the foreground/bottom"},
		{"center foreground", 200, 200, "in the center", "in the foreground/bottom"},
		{"left boundary is center", 150, 0, "in the center", "in the background/top"},
		{"center boundary is right", 300, 0, "on the right", "in the background/top"},
		{"depth boundary is foreground", 0, 150, "on the left", "in the foreground/bottom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			horizontal, vertical := PositionPhrase(tt.x, tt.y)
			if horizontal != tt.wantHorizontal {
				t.Errorf("PositionPhrase(%v, %v) horizontal = %q, want %q", tt.x, tt.y, horizontal, tt.wantHorizontal)
			}
			if vertical != tt.wantVertical {
				t.Errorf("PositionPhrase(%v, %v) vertical = %q, want %q", tt.x, tt.y, vertical, tt.wantVertical)
			}
		})
	}
}

func TestItemPhrase(t *testing.T) {
	got := ItemPhrase("a red barn", "half collapsed", 100, 300)
	want := "a red barn (half collapsed) located on the left and in the foreground/bottom"
	if got != want {
		t.Errorf("ItemPhrase() = %q, want %q", got, want)
	}

	got = ItemPhrase("a red barn", "", 100, 300)
	want = "a red barn (no notes) located on the left and in the foreground/bottom"
	if got != want {
		t.Errorf("ItemPhrase() with empty note = %q, want %q", got, want)
	}
}

func TestDescribeItemsSkipsStaleAssets(t *testing.T) {
	assets := map[string]*store.Asset{
		"a1": {Id: "a1", Prompt: "a lighthouse"},
	}
	lookup := func(id string) (*store.Asset, bool) {
		a, ok := assets[id]
		return a, ok
	}
	items := []*store.StoryboardItem{
		{Id: "i1", AssetId: "a1", X: 10, Y: 10},
		{Id: "i2", AssetId: "deleted", X: 200, Y: 300},
	}
	phrases := DescribeItems(items, lookup)
	if len(phrases) != 1 {
		t.Fatalf("DescribeItems() returned %d phrases, want 1", len(phrases))
	}
	want := "a lighthouse (no notes) located on the left and in the background/top"
	if phrases[0] != want {
		t.Errorf("DescribeItems()[0] = %q, want %q", phrases[0], want)
	}
}

func TestJoinPhrases(t *testing.T) {
	got := JoinPhrases([]string{"first", "second"})
	if got != "first; second" {
		t.Errorf("JoinPhrases() = %q, want %q", got, "first; second")
	}
	if JoinPhrases(nil) != "" {
		t.Errorf("JoinPhrases(nil) = %q, want empty", JoinPhrases(nil))
	}
}
