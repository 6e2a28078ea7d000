package compositor

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/scenesmith/scenesmith/studio/store"
)

type stubTextBackend struct {
	reply string
	err   error
}

func (b *stubTextBackend) GenerateText(ctx context.Context, system string, prompt string) (string, error) {
	return b.reply, b.err
}

func boardFixture() ([]*store.StoryboardItem, func(id string) (*store.Asset, bool)) {
	assets := map[string]*store.Asset{
		"a1": {Id: "a1", Prompt: "a lighthouse"},
	}
	items := []*store.StoryboardItem{{Id: "i1", AssetId: "a1", X: 10, Y: 10}}
	return items, func(id string) (*store.Asset, bool) {
		a, ok := assets[id]
		return a, ok
	}
}

func TestDescribeEmptyBoard(t *testing.T) {
	d := &Describer{Backend: &stubTextBackend{reply: "should not be used"}}
	if got := d.Describe(context.Background(), nil, func(string) (*store.Asset, bool) { return nil, false }); got != "" {
		t.Errorf("Describe() on empty board = %q, want empty", got)
	}
}

func TestDescribeUsesBackendReply(t *testing.T) {
	items, lookup := boardFixture()
	d := &Describer{Backend: &stubTextBackend{reply: "  A lighthouse stands alone.  "}}
	if got := d.Describe(context.Background(), items, lookup); got != "A lighthouse stands alone." {
		t.Errorf("Describe() = %q, want the trimmed backend reply", got)
	}
}

func TestDescribeFallsBackOnError(t *testing.T) {
	items, lookup := boardFixture()
	d := &Describer{Backend: &stubTextBackend{err: errors.New("backend down")}}
	want := "a lighthouse (no notes) located on the left and in the background/top"
	if got := d.Describe(context.Background(), items, lookup); got != want {
		t.Errorf("Describe() on backend error = %q, want local join %q", got, want)
	}
}

func TestDescribeFallsBackOnEmptyReply(t *testing.T) {
	items, lookup := boardFixture()
	d := &Describer{Backend: &stubTextBackend{reply: "   "}}
	want := "a lighthouse (no notes) located on the left and in the background/top"
	if got := d.Describe(context.Background(), items, lookup); got != want {
		t.Errorf("Describe() on blank reply = %q, want local join %q", got, want)
	}
}
