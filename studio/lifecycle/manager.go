package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/scenesmith/scenesmith/common"
	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/common/helper"
	"github.com/scenesmith/scenesmith/common/logger"
	"github.com/scenesmith/scenesmith/relay/gemini"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/studio/builder"
	"github.com/scenesmith/scenesmith/studio/store"
)

// VideoBackend is the slice of the relay the manager needs: start a job,
// poll it, fetch the result bytes.
type VideoBackend interface {
	StartVideoGeneration(ctx context.Context, model string, req *gemini.VideoGenerationRequest) (string, error)
	PollVideoOperation(ctx context.Context, operationName string) (*gemini.Operation, error)
	DownloadMedia(ctx context.Context, uri string) (*relaymodel.MediaPayload, error)
}

// Manager drives a submission through its whole lifecycle: claim the
// store's single generation slot, submit, poll until terminal, download the
// media, materialize the Scene. Polls are separated by the full interval
// and the loop gives up after maxPolls attempts rather than spinning
// forever on an operation that never completes.
type Manager struct {
	backend  VideoBackend
	store    *store.Store
	interval time.Duration
	maxPolls int
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewManager(backend VideoBackend, st *store.Store) *Manager {
	return &Manager{
		backend:  backend,
		store:    st,
		interval: config.VideoPollInterval,
		maxPolls: config.VideoMaxPolls,
		sleep:    sleepWithContext,
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Submission is a validated, claimed generation attempt.
type Submission struct {
	Id      string
	model   string
	request *gemini.VideoGenerationRequest
	params  *relaymodel.GenerateVideoParams
}

// Begin validates params and claims the generation slot. Validation
// failures never touch the slot; a busy slot rejects the submission
// outright rather than queueing it.
func (m *Manager) Begin(params *relaymodel.GenerateVideoParams) (*Submission, error) {
	model, request, err := builder.Build(params)
	if err != nil {
		return nil, err
	}
	submissionId, err := m.store.BeginSubmission()
	if err != nil {
		return nil, err
	}
	return &Submission{
		Id:      submissionId,
		model:   model,
		request: request,
		params:  params,
	}, nil
}

// Run blocks until the claimed submission reaches a terminal state and
// records the outcome in the store.
func (m *Manager) Run(ctx context.Context, sub *Submission) (*store.Scene, error) {
	logger.Infof(ctx, "submission %s started: mode=%s model=%s", sub.Id, sub.params.Mode, sub.model)

	scene, err := m.run(ctx, sub)
	if err != nil {
		if !m.store.FailSubmission(sub.Id, relaymodel.AsStudioError(err).Message) {
			logger.Warnf(ctx, "discarding stale failure for submission %s", sub.Id)
		}
		return nil, err
	}
	if !m.store.CompleteSubmission(sub.Id, scene) {
		// A newer submission owns the slot; the late result must not
		// overwrite its state.
		logger.Warnf(ctx, "discarding stale result for submission %s", sub.Id)
		return nil, relaymodel.EmptyResultError("generation result arrived for a superseded submission")
	}
	logger.Infof(ctx, "submission %s completed: scene=%s", sub.Id, scene.Id)
	return scene, nil
}

// RunAsync runs the claimed submission on the shared goroutine pool. The
// outcome lands in the store's lifecycle phase; callers watch it there.
func (m *Manager) RunAsync(sub *Submission) {
	common.SafeGoroutine(func() {
		_, _ = m.Run(context.Background(), sub)
	})
}

// Submit is Begin followed by a blocking Run.
func (m *Manager) Submit(ctx context.Context, params *relaymodel.GenerateVideoParams) (*store.Scene, error) {
	sub, err := m.Begin(params)
	if err != nil {
		return nil, err
	}
	return m.Run(ctx, sub)
}

func (m *Manager) run(ctx context.Context, sub *Submission) (*store.Scene, error) {
	operationName, err := m.backend.StartVideoGeneration(ctx, sub.model, sub.request)
	if err != nil {
		return nil, err
	}

	operation, err := m.await(ctx, operationName)
	if err != nil {
		return nil, err
	}

	uri := operation.FirstVideoURI()
	if uri == "" {
		// Terminal state without media is a hard failure, distinct from
		// transport problems.
		return nil, relaymodel.EmptyResultError("operation finished but produced no video")
	}

	media, err := m.backend.DownloadMedia(ctx, uri)
	if err != nil {
		return nil, err
	}

	return &store.Scene{
		Id:     uuid.New().String(),
		Prompt: sub.params.Prompt,
		Media:  *media,
		VideoRef: relaymodel.VideoRef{
			URI:       uri,
			Operation: operationName,
		},
		CreatedAt: helper.GetTimestamp(),
	}, nil
}

func (m *Manager) await(ctx context.Context, operationName string) (*gemini.Operation, error) {
	for attempt := 0; attempt < m.maxPolls; attempt++ {
		if err := m.sleep(ctx, m.interval); err != nil {
			return nil, relaymodel.TransportError(err)
		}
		operation, err := m.backend.PollVideoOperation(ctx, operationName)
		if err != nil {
			return nil, err
		}
		if operation.Done {
			return operation, nil
		}
		logger.Debugf(ctx, "operation %s still running (poll %d/%d)", operationName, attempt+1, m.maxPolls)
	}
	return nil, relaymodel.TimeoutError("video operation did not finish within the poll budget")
}
