package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/scenesmith/scenesmith/common/helper"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

// Store is the authoritative in-memory record of the studio session:
// timeline scenes, asset bin, continuity locks, styles, storyboard and
// story memory. Every mutation happens under one mutex and publishes an
// event to subscribers; nothing here outlives the process.
type Store struct {
	mu sync.Mutex

	scenes           []*Scene // append order == completion order
	assets           []*Asset // most-recent-first
	selectedSceneId  string
	selectedAssetIds map[string]bool

	continuity   ContinuityProfile
	activeStyle  string
	customStyles []FilmStyle

	storyboard  []*StoryboardItem
	storyMemory string

	phase             Phase
	phaseMessage      string
	pendingSubmission string

	subscribers map[chan Event]bool
}

func NewStore() *Store {
	return &Store{
		selectedAssetIds: make(map[string]bool),
		phase:            PhaseIdle,
		subscribers:      make(map[chan Event]bool),
	}
}

// --- assets ---

// AddAsset creates an asset record and inserts it most-recent-first.
func (s *Store) AddAsset(prompt string, assetType AssetType, media relaymodel.MediaPayload) *Asset {
	asset := &Asset{
		Id:        uuid.New().String(),
		Prompt:    prompt,
		Type:      assetType,
		Media:     media,
		CreatedAt: helper.GetTimestamp(),
	}
	s.mu.Lock()
	s.assets = append([]*Asset{asset}, s.assets...)
	s.mu.Unlock()
	s.publish(Event{Type: EventAssetAdded, Id: asset.Id})
	return asset
}

func (s *Store) Assets() []*Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

func (s *Store) AssetByID(id string) (*Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assetByIDLocked(id)
}

func (s *Store) assetByIDLocked(id string) (*Asset, bool) {
	for _, asset := range s.assets {
		if asset.Id == id {
			return asset, true
		}
	}
	return nil, false
}

// RemoveAsset deletes an asset. Continuity and storyboard references are
// left in place: stale ids are tolerated as no-ops downstream.
func (s *Store) RemoveAsset(id string) bool {
	s.mu.Lock()
	removed := false
	for i, asset := range s.assets {
		if asset.Id == id {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			removed = true
			break
		}
	}
	delete(s.selectedAssetIds, id)
	s.mu.Unlock()
	if removed {
		s.publish(Event{Type: EventAssetRemoved, Id: id})
	}
	return removed
}

// ToggleAssetSelection flips membership of an asset in the selection set
// used for reference injection. Unknown ids are rejected.
func (s *Store) ToggleAssetSelection(id string) error {
	s.mu.Lock()
	if _, ok := s.assetByIDLocked(id); !ok {
		s.mu.Unlock()
		return errors.Errorf("unknown asset %s", id)
	}
	if s.selectedAssetIds[id] {
		delete(s.selectedAssetIds, id)
	} else {
		s.selectedAssetIds[id] = true
	}
	s.mu.Unlock()
	s.publish(Event{Type: EventSelectionChanged, Id: id})
	return nil
}

func (s *Store) SelectedAssets() []*Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Asset
	for _, asset := range s.assets {
		if s.selectedAssetIds[asset.Id] {
			out = append(out, asset)
		}
	}
	return out
}

// --- continuity ---

// LockAsset adds an asset to the cast lock.
func (s *Store) LockAsset(id string) error {
	s.mu.Lock()
	if _, ok := s.assetByIDLocked(id); !ok {
		s.mu.Unlock()
		return errors.Errorf("unknown asset %s", id)
	}
	for _, locked := range s.continuity.CastLock {
		if locked == id {
			s.mu.Unlock()
			return nil
		}
	}
	s.continuity.CastLock = append(s.continuity.CastLock, id)
	s.mu.Unlock()
	s.publish(Event{Type: EventContinuityChanged, Id: id})
	return nil
}

func (s *Store) UnlockAsset(id string) {
	s.mu.Lock()
	for i, locked := range s.continuity.CastLock {
		if locked == id {
			s.continuity.CastLock = append(s.continuity.CastLock[:i], s.continuity.CastLock[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish(Event{Type: EventContinuityChanged, Id: id})
}

// SetLighting sets the atmosphere lock; empty clears it.
func (s *Store) SetLighting(lock string) error {
	if !IsValidLighting(lock) {
		return errors.Errorf("unknown lighting lock %q", lock)
	}
	s.mu.Lock()
	s.continuity.Lighting = lock
	s.mu.Unlock()
	s.publish(Event{Type: EventContinuityChanged})
	return nil
}

func (s *Store) Continuity() ContinuityProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile := s.continuity
	profile.CastLock = append([]string(nil), s.continuity.CastLock...)
	return profile
}

// LockedAssets resolves the cast lock to live assets. Ids referring to
// assets that have since been removed are skipped, never an error.
func (s *Store) LockedAssets() []*Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Asset
	for _, id := range s.continuity.CastLock {
		if asset, ok := s.assetByIDLocked(id); ok {
			out = append(out, asset)
		}
	}
	return out
}

// --- styles ---

func (s *Store) Styles() []FilmStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FilmStyle, 0, len(BuiltinStyles)+len(s.customStyles))
	out = append(out, BuiltinStyles...)
	out = append(out, s.customStyles...)
	return out
}

// AddCustomStyle appends a user-created style. Custom styles are never
// deleted within a session.
func (s *Store) AddCustomStyle(name, description, fragment string) FilmStyle {
	style := FilmStyle{
		Id:          uuid.New().String(),
		Name:        name,
		Category:    CategoryCustom,
		Description: description,
		Fragment:    fragment,
	}
	s.mu.Lock()
	s.customStyles = append(s.customStyles, style)
	s.mu.Unlock()
	s.publish(Event{Type: EventStyleChanged, Id: style.Id})
	return style
}

// SetActiveStyle selects a style by id; empty clears the selection.
func (s *Store) SetActiveStyle(id string) error {
	if id != "" {
		if _, ok := s.styleByID(id); !ok {
			return errors.Errorf("unknown style %s", id)
		}
	}
	s.mu.Lock()
	s.activeStyle = id
	s.mu.Unlock()
	s.publish(Event{Type: EventStyleChanged, Id: id})
	return nil
}

// ActiveStyle returns the selected style, or nil when none is selected.
func (s *Store) ActiveStyle() *FilmStyle {
	s.mu.Lock()
	id := s.activeStyle
	s.mu.Unlock()
	if id == "" {
		return nil
	}
	if style, ok := s.styleByID(id); ok {
		return &style
	}
	return nil
}

func (s *Store) styleByID(id string) (FilmStyle, bool) {
	for _, style := range BuiltinStyles {
		if style.Id == id {
			return style, true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, style := range s.customStyles {
		if style.Id == id {
			return style, true
		}
	}
	return FilmStyle{}, false
}

// --- scenes ---

func (s *Store) Scenes() []*Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Scene, len(s.scenes))
	copy(out, s.scenes)
	return out
}

func (s *Store) SceneByID(id string) (*Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, scene := range s.scenes {
		if scene.Id == id {
			return scene, true
		}
	}
	return nil, false
}

// SelectScene marks a scene as the current selection.
func (s *Store) SelectScene(id string) error {
	s.mu.Lock()
	found := false
	for _, scene := range s.scenes {
		if scene.Id == id {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return errors.Errorf("unknown scene %s", id)
	}
	s.selectedSceneId = id
	s.mu.Unlock()
	s.publish(Event{Type: EventSelectionChanged, Id: id})
	return nil
}

func (s *Store) SelectedSceneID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSceneId
}

// RemoveScene deletes a scene from the timeline. Deleting the selected
// scene clears the selection rather than leaving it dangling.
func (s *Store) RemoveScene(id string) bool {
	s.mu.Lock()
	removed := false
	for i, scene := range s.scenes {
		if scene.Id == id {
			s.scenes = append(s.scenes[:i], s.scenes[i+1:]...)
			removed = true
			break
		}
	}
	if removed && s.selectedSceneId == id {
		s.selectedSceneId = ""
	}
	s.mu.Unlock()
	if removed {
		s.publish(Event{Type: EventSceneRemoved, Id: id})
	}
	return removed
}

// --- storyboard ---

func (s *Store) AddStoryboardItem(assetId string, x, y float64, note string) (*StoryboardItem, error) {
	s.mu.Lock()
	if _, ok := s.assetByIDLocked(assetId); !ok {
		s.mu.Unlock()
		return nil, errors.Errorf("unknown asset %s", assetId)
	}
	item := &StoryboardItem{
		Id:      uuid.New().String(),
		AssetId: assetId,
		X:       x,
		Y:       y,
		Note:    note,
	}
	s.storyboard = append(s.storyboard, item)
	s.mu.Unlock()
	s.publish(Event{Type: EventStoryboardChanged, Id: item.Id})
	return item, nil
}

func (s *Store) MoveStoryboardItem(id string, x, y float64, note *string) error {
	s.mu.Lock()
	for _, item := range s.storyboard {
		if item.Id == id {
			item.X = x
			item.Y = y
			if note != nil {
				item.Note = *note
			}
			s.mu.Unlock()
			s.publish(Event{Type: EventStoryboardChanged, Id: id})
			return nil
		}
	}
	s.mu.Unlock()
	return errors.Errorf("unknown storyboard item %s", id)
}

func (s *Store) RemoveStoryboardItem(id string) bool {
	s.mu.Lock()
	removed := false
	for i, item := range s.storyboard {
		if item.Id == id {
			s.storyboard = append(s.storyboard[:i], s.storyboard[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.publish(Event{Type: EventStoryboardChanged, Id: id})
	}
	return removed
}

func (s *Store) StoryboardItems() []*StoryboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*StoryboardItem, len(s.storyboard))
	copy(out, s.storyboard)
	return out
}

// --- story memory ---

func (s *Store) StoryMemory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storyMemory
}

func (s *Store) SetStoryMemory(text string) {
	s.mu.Lock()
	s.storyMemory = text
	s.mu.Unlock()
	s.publish(Event{Type: EventStoryChanged})
}
