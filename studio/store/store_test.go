package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

func testMedia() relaymodel.MediaPayload {
	return relaymodel.MediaPayload{MimeType: "image/png", Data: []byte{1, 2, 3}}
}

func TestAssetsMostRecentFirst(t *testing.T) {
	s := NewStore()
	first := s.AddAsset("first", AssetCharacter, testMedia())
	second := s.AddAsset("second", AssetProp, testMedia())

	assets := s.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, second.Id, assets[0].Id)
	assert.Equal(t, first.Id, assets[1].Id)
}

func TestRemoveAssetClearsSelectionOnly(t *testing.T) {
	s := NewStore()
	asset := s.AddAsset("hero", AssetCharacter, testMedia())
	require.NoError(t, s.ToggleAssetSelection(asset.Id))
	require.NoError(t, s.LockAsset(asset.Id))

	require.True(t, s.RemoveAsset(asset.Id))
	assert.False(t, s.RemoveAsset(asset.Id), "second removal should report not found")
	assert.Empty(t, s.SelectedAssets())

	// The cast lock keeps the stale id; resolution just skips it.
	assert.Contains(t, s.Continuity().CastLock, asset.Id)
	assert.Empty(t, s.LockedAssets())
}

func TestToggleAssetSelection(t *testing.T) {
	s := NewStore()
	asset := s.AddAsset("hero", AssetCharacter, testMedia())

	require.Error(t, s.ToggleAssetSelection("missing"))

	require.NoError(t, s.ToggleAssetSelection(asset.Id))
	require.Len(t, s.SelectedAssets(), 1)
	require.NoError(t, s.ToggleAssetSelection(asset.Id))
	assert.Empty(t, s.SelectedAssets())
}

func TestLockAssetIdempotent(t *testing.T) {
	s := NewStore()
	asset := s.AddAsset("hero", AssetCharacter, testMedia())

	require.NoError(t, s.LockAsset(asset.Id))
	require.NoError(t, s.LockAsset(asset.Id))
	assert.Equal(t, []string{asset.Id}, s.Continuity().CastLock)

	s.UnlockAsset(asset.Id)
	assert.Empty(t, s.Continuity().CastLock)
}

func TestSetLighting(t *testing.T) {
	s := NewStore()
	require.Error(t, s.SetLighting("disco strobe"))
	require.NoError(t, s.SetLighting("golden hour"))
	assert.Equal(t, "golden hour", s.Continuity().Lighting)
	require.NoError(t, s.SetLighting(""))
	assert.Empty(t, s.Continuity().Lighting)
}

func TestStyles(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.ActiveStyle())
	require.Error(t, s.SetActiveStyle("missing"))

	require.NoError(t, s.SetActiveStyle("noir"))
	active := s.ActiveStyle()
	require.NotNil(t, active)
	assert.Equal(t, "Film Noir", active.Name)

	custom := s.AddCustomStyle("Dogme", "handheld realism", "Dogme 95 style, natural light only.")
	assert.Equal(t, CategoryCustom, custom.Category)
	require.NoError(t, s.SetActiveStyle(custom.Id))
	assert.Len(t, s.Styles(), len(BuiltinStyles)+1)

	require.NoError(t, s.SetActiveStyle(""))
	assert.Nil(t, s.ActiveStyle())
}

func TestRemoveSceneClearsSelection(t *testing.T) {
	s := NewStore()
	id, err := s.BeginSubmission()
	require.NoError(t, err)
	scene := &Scene{Id: "scene-1", Prompt: "opening shot"}
	require.True(t, s.CompleteSubmission(id, scene))

	require.NoError(t, s.SelectScene(scene.Id))
	assert.Equal(t, scene.Id, s.SelectedSceneID())

	require.True(t, s.RemoveScene(scene.Id))
	assert.Empty(t, s.SelectedSceneID())
	assert.False(t, s.RemoveScene(scene.Id))
}

func TestStoryboardLifecycle(t *testing.T) {
	s := NewStore()
	_, err := s.AddStoryboardItem("missing", 0, 0, "")
	require.Error(t, err)

	asset := s.AddAsset("barn", AssetEnvironment, testMedia())
	item, err := s.AddStoryboardItem(asset.Id, 10, 20, "wide")
	require.NoError(t, err)

	note := "close"
	require.NoError(t, s.MoveStoryboardItem(item.Id, 200, 300, &note))
	items := s.StoryboardItems()
	require.Len(t, items, 1)
	assert.Equal(t, 200.0, items[0].X)
	assert.Equal(t, "close", items[0].Note)

	require.NoError(t, s.MoveStoryboardItem(item.Id, 5, 5, nil))
	assert.Equal(t, "close", s.StoryboardItems()[0].Note, "nil note keeps the old note")

	require.Error(t, s.MoveStoryboardItem("missing", 0, 0, nil))
	require.True(t, s.RemoveStoryboardItem(item.Id))
	assert.False(t, s.RemoveStoryboardItem(item.Id))
}

func TestSubmissionSlot(t *testing.T) {
	s := NewStore()
	id, err := s.BeginSubmission()
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, s.PhaseState().Phase)

	_, err = s.BeginSubmission()
	require.Error(t, err, "second submission must be rejected while loading")
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeBusy))

	require.True(t, s.CompleteSubmission(id, &Scene{Id: "scene-1"}))
	assert.Equal(t, PhaseSuccess, s.PhaseState().Phase)
	require.Len(t, s.Scenes(), 1)
}

func TestStaleSubmissionDiscarded(t *testing.T) {
	s := NewStore()
	id, err := s.BeginSubmission()
	require.NoError(t, err)
	require.True(t, s.FailSubmission(id, "backend timeout"))
	assert.Equal(t, PhaseError, s.PhaseState().Phase)
	assert.Equal(t, "backend timeout", s.PhaseState().Message)

	// The late result from the failed attempt must not land.
	assert.False(t, s.CompleteSubmission(id, &Scene{Id: "ghost"}))
	assert.Empty(t, s.Scenes())
	assert.False(t, s.FailSubmission(id, "twice"))
}

func TestCompleteSubmissionConsumesSelection(t *testing.T) {
	s := NewStore()
	asset := s.AddAsset("hero", AssetCharacter, testMedia())
	require.NoError(t, s.ToggleAssetSelection(asset.Id))

	id, err := s.BeginSubmission()
	require.NoError(t, err)
	require.True(t, s.CompleteSubmission(id, &Scene{Id: "scene-1"}))
	assert.Empty(t, s.SelectedAssets(), "selection is consumed by the generation")
}

func TestResetPhase(t *testing.T) {
	s := NewStore()
	id, err := s.BeginSubmission()
	require.NoError(t, err)
	assert.False(t, s.ResetPhase(), "loading phase cannot be reset")

	require.True(t, s.FailSubmission(id, "boom"))
	require.True(t, s.ResetPhase())
	assert.Equal(t, PhaseIdle, s.PhaseState().Phase)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	events, cancel := s.Subscribe()
	defer cancel()

	asset := s.AddAsset("hero", AssetCharacter, testMedia())

	select {
	case event := <-events:
		assert.Equal(t, EventAssetAdded, event.Type)
		assert.Equal(t, asset.Id, event.Id)
	default:
		t.Fatal("expected an asset_added event on the subscription channel")
	}
}
