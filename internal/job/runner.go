// Package job executes pitch plan requests in the background, one
// goroutine per job, and reports progress to the requesting channel.
package job

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nest-agency/pitch-cli/internal/extract"
	"github.com/nest-agency/pitch-cli/internal/model"
	"github.com/nest-agency/pitch-cli/internal/publish"
)

// Notifier posts one progress message to a channel.
type Notifier interface {
	Notify(ctx context.Context, channelID, message string) error
}

// Extractor finds the client record a job was started for.
type Extractor interface {
	Find(ctx context.Context, name string) (model.ClientRecord, error)
}

// Generator runs the generation pipeline over one record.
type Generator interface {
	Run(ctx context.Context, record model.ClientRecord) (*model.PitchPlan, error)
}

// Publisher renders and shares a finished plan.
type Publisher interface {
	Publish(ctx context.Context, plan *model.PitchPlan) (*publish.Result, error)
}

// Runner executes jobs off the request thread. Jobs are independent:
// no queue, no cap on concurrency, no shared state beyond the active
// gauge and the drain WaitGroup.
type Runner struct {
	extractor Extractor
	generator Generator
	publisher Publisher
	notifier  Notifier

	wg     sync.WaitGroup
	active atomic.Int64
}

// NewRunner wires the four collaborators into a Runner.
func NewRunner(extractor Extractor, generator Generator, publisher Publisher, notifier Notifier) *Runner {
	return &Runner{
		extractor: extractor,
		generator: generator,
		publisher: publisher,
		notifier:  notifier,
	}
}

// Start launches the job in its own goroutine and returns immediately.
// A started job always runs to a terminal notification; there is no
// cancellation.
func (r *Runner) Start(j model.Job) {
	r.wg.Add(1)
	r.active.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.active.Add(-1)
		r.run(j)
	}()
}

// Active returns the number of jobs currently in flight.
func (r *Runner) Active() int64 {
	return r.active.Load()
}

// Wait blocks until every in-flight job has finished or the timeout
// elapses, reporting whether the drain completed.
func (r *Runner) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// run drives one job through the state machine. The context is
// detached from the triggering request: the ack has already gone out
// and the job must outlive the request.
func (r *Runner) run(j model.Job) {
	ctx := context.Background()
	log := zap.L().With(
		zap.String("job_id", j.ID),
		zap.String("client", j.ClientName),
		zap.String("channel", j.ChannelID),
		zap.String("user", j.UserID),
	)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("job: recovered from panic", zap.Any("panic", rec))
			r.notify(ctx, log, j, systemErrorMessage(rec))
		}
	}()

	start := time.Now()

	log.Info("job: state", zap.String("state", string(model.JobReceived)))
	r.notify(ctx, log, j, receivedMessage(j))

	log.Info("job: state", zap.String("state", string(model.JobExtracting)))
	r.notify(ctx, log, j, extractingMessage(j.ClientName))
	record, err := r.extractor.Find(ctx, j.ClientName)
	if err != nil {
		if eris.Is(err, extract.ErrNotFound) {
			log.Warn("job: client not found",
				zap.String("state", string(model.JobFailed)))
			r.notify(ctx, log, j, notFoundMessage(j.ClientName))
			return
		}
		log.Error("job: extraction failed",
			zap.String("state", string(model.JobFailed)),
			zap.Error(err))
		r.notify(ctx, log, j, systemErrorMessage(err))
		return
	}

	log.Info("job: state",
		zap.String("state", string(model.JobGenerating)),
		zap.String("record_client", record.Name))
	r.notify(ctx, log, j, generatingMessage())
	plan, err := r.generator.Run(ctx, record)
	if err != nil {
		log.Error("job: generation failed",
			zap.String("state", string(model.JobFailed)),
			zap.Error(err))
		r.notify(ctx, log, j, generationFailedMessage(err))
		return
	}

	log.Info("job: state", zap.String("state", string(model.JobPublishing)))
	r.notify(ctx, log, j, publishingMessage())
	result, err := r.publisher.Publish(ctx, plan)
	if err != nil {
		log.Error("job: publish failed",
			zap.String("state", string(model.JobFailed)),
			zap.Error(err))
		r.notify(ctx, log, j, publishFailedMessage())
		return
	}

	log.Info("job: state",
		zap.String("state", string(model.JobDone)),
		zap.String("document_url", result.URL),
		zap.Duration("elapsed", time.Since(start)))
	r.notify(ctx, log, j, successMessage(plan, result))
}

// notify posts one message, logging failures without propagating them.
// A lost notification never aborts the job.
func (r *Runner) notify(ctx context.Context, log *zap.Logger, j model.Job, message string) {
	if err := r.notifier.Notify(ctx, j.ChannelID, message); err != nil {
		log.Warn("job: notification failed", zap.Error(err))
	}
}
