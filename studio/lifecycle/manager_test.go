package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/scenesmith/scenesmith/relay/gemini"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/store"
)

type stubBackend struct {
	startErr    error
	operations  []*gemini.Operation
	pollErr     error
	media       *relaymodel.MediaPayload
	downloadErr error

	startCalls int
	pollCalls  int
}

func (b *stubBackend) StartVideoGeneration(ctx context.Context, model string, req *gemini.VideoGenerationRequest) (string, error) {
	b.startCalls++
	if b.startErr != nil {
		return "", b.startErr
	}
	return "operations/op-1", nil
}

func (b *stubBackend) PollVideoOperation(ctx context.Context, operationName string) (*gemini.Operation, error) {
	if b.pollErr != nil {
		return nil, b.pollErr
	}
	op := b.operations[b.pollCalls]
	if b.pollCalls < len(b.operations)-1 {
		b.pollCalls++
	}
	return op, nil
}

func (b *stubBackend) DownloadMedia(ctx context.Context, uri string) (*relaymodel.MediaPayload, error) {
	if b.downloadErr != nil {
		return nil, b.downloadErr
	}
	return b.media, nil
}

func doneOperation(uri string) *gemini.Operation {
	return &gemini.Operation{
		Name: "operations/op-1",
		Done: true,
		Response: &gemini.OperationResponse{
			GenerateVideoResponse: &gemini.GenerateVideoResponse{
				GeneratedSamples: []gemini.GeneratedSample{{Video: &gemini.VideoSource{URI: uri}}},
			},
		},
	}
}

func newTestManager(backend VideoBackend, st *store.Store, maxPolls int) (*Manager, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	return &Manager{
		backend:  backend,
		store:    st,
		interval: 5 * time.Second,
		maxPolls: maxPolls,
		sleep: func(ctx context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return nil
		},
	}, sleeps
}

func textParams() *relaymodel.GenerateVideoParams {
	return &relaymodel.GenerateVideoParams{Mode: relaymodel.ModeTextToVideo, Prompt: "a storm over the sea"}
}

func TestSubmitHappyPath(t *testing.T) {
	backend := &stubBackend{
		operations: []*gemini.Operation{
			{Name: "operations/op-1"},
			{Name: "operations/op-1"},
			doneOperation("https://backend.example/files/v1"),
		},
		media: &relaymodel.MediaPayload{MimeType: "video/mp4", Data: []byte{0, 0, 0, 1}},
	}
	st := store.NewStore()
	m, sleeps := newTestManager(backend, st, 120)

	scene, err := m.Submit(context.Background(), textParams())
	require.NoError(t, err)
	require.NotNil(t, scene)
	assert.Equal(t, "a storm over the sea", scene.Prompt)
	assert.Equal(t, "https://backend.example/files/v1", scene.VideoRef.URI)
	assert.Equal(t, "operations/op-1", scene.VideoRef.Operation)
	assert.Equal(t, "video/mp4", scene.Media.MimeType)

	// Each of the three polls is preceded by a full interval sleep.
	require.Len(t, *sleeps, 3)
	for _, d := range *sleeps {
		assert.Equal(t, 5*time.Second, d)
	}

	assert.Equal(t, store.PhaseSuccess, st.PhaseState().Phase)
	require.Len(t, st.Scenes(), 1)
}

func TestSubmitValidationLeavesSlotIdle(t *testing.T) {
	st := store.NewStore()
	m, _ := newTestManager(&stubBackend{}, st, 120)

	_, err := m.Submit(context.Background(), &relaymodel.GenerateVideoParams{Mode: relaymodel.ModeTextToVideo})
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeInvalidRequest))
	assert.Equal(t, store.PhaseIdle, st.PhaseState().Phase, "validation failures must not claim the slot")
}

func TestSubmitRejectedWhileBusy(t *testing.T) {
	st := store.NewStore()
	m, _ := newTestManager(&stubBackend{}, st, 120)

	_, err := st.BeginSubmission()
	require.NoError(t, err)

	_, err = m.Begin(textParams())
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeBusy))
}

func TestSubmitEmptyResult(t *testing.T) {
	backend := &stubBackend{
		operations: []*gemini.Operation{{Name: "operations/op-1", Done: true}},
	}
	st := store.NewStore()
	m, _ := newTestManager(backend, st, 120)

	_, err := m.Submit(context.Background(), textParams())
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeEmptyResult))
	assert.Equal(t, store.PhaseError, st.PhaseState().Phase)
	assert.Empty(t, st.Scenes())
}

func TestSubmitPollBudgetExhausted(t *testing.T) {
	backend := &stubBackend{
		operations: []*gemini.Operation{{Name: "operations/op-1"}},
	}
	st := store.NewStore()
	m, sleeps := newTestManager(backend, st, 3)

	_, err := m.Submit(context.Background(), textParams())
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeGenerationTimeout))
	assert.Len(t, *sleeps, 3)
	assert.Equal(t, store.PhaseError, st.PhaseState().Phase)
}

func TestSubmitStartFailure(t *testing.T) {
	backend := &stubBackend{startErr: relaymodel.TransportError(errors.New("connection refused"))}
	st := store.NewStore()
	m, _ := newTestManager(backend, st, 120)

	_, err := m.Submit(context.Background(), textParams())
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeTransportError))
	assert.Equal(t, store.PhaseError, st.PhaseState().Phase)
}

func TestStaleResultDiscarded(t *testing.T) {
	backend := &stubBackend{
		operations: []*gemini.Operation{doneOperation("https://backend.example/files/v1")},
		media:      &relaymodel.MediaPayload{MimeType: "video/mp4", Data: []byte{1}},
	}
	st := store.NewStore()
	m, _ := newTestManager(backend, st, 120)

	sub, err := m.Begin(textParams())
	require.NoError(t, err)

	// The slot moves on before the first run finishes.
	require.True(t, st.FailSubmission(sub.Id, "cancelled"))
	next, err := st.BeginSubmission()
	require.NoError(t, err)

	_, err = m.Run(context.Background(), sub)
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeEmptyResult))
	assert.Empty(t, st.Scenes(), "the superseded result must not land on the timeline")

	state := st.PhaseState()
	assert.Equal(t, store.PhaseLoading, state.Phase)
	assert.Equal(t, next, state.SubmissionId)
}

func TestRunCancelledContext(t *testing.T) {
	backend := &stubBackend{
		operations: []*gemini.Operation{doneOperation("https://backend.example/files/v1")},
	}
	st := store.NewStore()
	m := &Manager{
		backend:  backend,
		store:    st,
		interval: 5 * time.Second,
		maxPolls: 120,
		sleep:    sleepWithContext,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sub, err := m.Begin(textParams())
	require.NoError(t, err)
	_, err = m.Run(ctx, sub)
	require.Error(t, err)
	assert.True(t, relaymodel.IsCode(err, relaymodel.CodeTransportError))
	assert.Equal(t, store.PhaseError, st.PhaseState().Phase)
}
