package store

// Event types pushed to subscribers after each mutation.
const (
	EventAssetAdded        = "asset_added"
	EventAssetRemoved      = "asset_removed"
	EventSceneAdded        = "scene_added"
	EventSceneRemoved      = "scene_removed"
	EventSelectionChanged  = "selection_changed"
	EventContinuityChanged = "continuity_changed"
	EventStyleChanged      = "style_changed"
	EventStoryboardChanged = "storyboard_changed"
	EventStoryChanged      = "story_changed"
	EventPhaseChanged      = "phase_changed"
)

// Event is one state-change notification. Id names the affected record
// where one exists.
type Event struct {
	Type  string `json:"type"`
	Id    string `json:"id,omitempty"`
	Phase Phase  `json:"phase,omitempty"`
}

// Subscribe registers a buffered event channel. The returned cancel
// function must be called exactly once; events that would overflow the
// buffer are dropped rather than blocking mutations.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)
	s.mu.Lock()
	s.subscribers[ch] = true
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		if s.subscribers[ch] {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) publish(event Event) {
	s.mu.Lock()
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
	s.mu.Unlock()
}
