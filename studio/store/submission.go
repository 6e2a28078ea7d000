package store

import (
	"github.com/google/uuid"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

// PhaseState is a snapshot of the single generation slot.
type PhaseState struct {
	Phase        Phase  `json:"phase"`
	Message      string `json:"message,omitempty"`
	SubmissionId string `json:"submission_id,omitempty"`
}

// BeginSubmission claims the generation slot and returns the submission id
// tagging this attempt. Exactly one submission may be in flight: a second
// one is rejected outright, never queued or interleaved. Any stale pending
// target from a previous run is cleared first.
func (s *Store) BeginSubmission() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseLoading {
		return "", relaymodel.BusyError("a generation request is already in flight")
	}
	id := uuid.New().String()
	s.pendingSubmission = id
	s.phase = PhaseLoading
	s.phaseMessage = ""
	s.publishLocked(Event{Type: EventPhaseChanged, Phase: PhaseLoading})
	return id, nil
}

// CompleteSubmission materializes the finished scene into the timeline.
// Results tagged with a submission id that is no longer the pending target
// are discarded without touching state; the return reports whether the
// result was accepted. On acceptance the asset-selection set is cleared:
// the references were consumed by this generation.
func (s *Store) CompleteSubmission(submissionId string, scene *Scene) bool {
	s.mu.Lock()
	if s.pendingSubmission != submissionId {
		s.mu.Unlock()
		return false
	}
	s.scenes = append(s.scenes, scene)
	s.selectedAssetIds = make(map[string]bool)
	s.pendingSubmission = ""
	s.phase = PhaseSuccess
	s.phaseMessage = ""
	s.publishLocked(Event{Type: EventSceneAdded, Id: scene.Id})
	s.publishLocked(Event{Type: EventPhaseChanged, Phase: PhaseSuccess})
	s.mu.Unlock()
	return true
}

// FailSubmission records a failed generation. Stale failures are discarded
// the same way stale successes are.
func (s *Store) FailSubmission(submissionId string, message string) bool {
	s.mu.Lock()
	if s.pendingSubmission != submissionId {
		s.mu.Unlock()
		return false
	}
	s.pendingSubmission = ""
	s.phase = PhaseError
	s.phaseMessage = message
	s.publishLocked(Event{Type: EventPhaseChanged, Phase: PhaseError})
	s.mu.Unlock()
	return true
}

// ResetPhase returns an error or success phase to idle, e.g. after the UI
// has shown the outcome. A loading phase cannot be reset.
func (s *Store) ResetPhase() bool {
	s.mu.Lock()
	if s.phase == PhaseLoading {
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseIdle
	s.phaseMessage = ""
	s.publishLocked(Event{Type: EventPhaseChanged, Phase: PhaseIdle})
	s.mu.Unlock()
	return true
}

func (s *Store) PhaseState() PhaseState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PhaseState{
		Phase:        s.phase,
		Message:      s.phaseMessage,
		SubmissionId: s.pendingSubmission,
	}
}

// publishLocked publishes while the store mutex is already held.
func (s *Store) publishLocked(event Event) {
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
