package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nest-agency/pitch-cli/internal/extract"
	"github.com/nest-agency/pitch-cli/internal/model"
	"github.com/nest-agency/pitch-cli/internal/pipeline"
	"github.com/nest-agency/pitch-cli/internal/publish"
)

type extractorFunc func(ctx context.Context, name string) (model.ClientRecord, error)

func (f extractorFunc) Find(ctx context.Context, name string) (model.ClientRecord, error) {
	return f(ctx, name)
}

type generatorFunc func(ctx context.Context, record model.ClientRecord) (*model.PitchPlan, error)

func (f generatorFunc) Run(ctx context.Context, record model.ClientRecord) (*model.PitchPlan, error) {
	return f(ctx, record)
}

type publisherFunc func(ctx context.Context, plan *model.PitchPlan) (*publish.Result, error)

func (f publisherFunc) Publish(ctx context.Context, plan *model.PitchPlan) (*publish.Result, error) {
	return f(ctx, plan)
}

// recordingNotifier captures messages per channel in arrival order.
type recordingNotifier struct {
	mu        sync.Mutex
	byChannel map[string][]string
	err       error
}

func (n *recordingNotifier) Notify(_ context.Context, channelID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.byChannel == nil {
		n.byChannel = make(map[string][]string)
	}
	n.byChannel[channelID] = append(n.byChannel[channelID], message)
	return n.err
}

func (n *recordingNotifier) messages(channelID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.byChannel[channelID]))
	copy(out, n.byChannel[channelID])
	return out
}

func testJob() model.Job {
	return model.Job{
		ID:         "a1b2c3d4-0000-0000-0000-000000000000",
		ClientName: "Acme Robotics",
		ChannelID:  "C100",
		UserID:     "U200",
	}
}

func testRecord() model.ClientRecord {
	r := model.ClientRecord{Name: "Acme Robotics"}
	r.Normalize()
	return r
}

func testPlan() *model.PitchPlan {
	return &model.PitchPlan{
		ClientName:          "Acme Robotics",
		StrategicFoundation: "FOUNDATION",
		Narrative:           "NARRATIVE",
		FinalPlan:           "PLAN",
		GeneratedAt:         time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func testResult() *publish.Result {
	return &publish.Result{
		URL:        "https://docs.google.com/document/d/doc-1/edit",
		SharedWith: []string{"dana@nest.agency", "lee@nest.agency"},
	}
}

func returnRecord(r model.ClientRecord) extractorFunc {
	return func(context.Context, string) (model.ClientRecord, error) { return r, nil }
}

func returnPlan(p *model.PitchPlan) generatorFunc {
	return func(context.Context, model.ClientRecord) (*model.PitchPlan, error) { return p, nil }
}

func returnResult(res *publish.Result) publisherFunc {
	return func(context.Context, *model.PitchPlan) (*publish.Result, error) { return res, nil }
}

func drain(t *testing.T, r *Runner) {
	t.Helper()
	require.True(t, r.Wait(5*time.Second), "jobs did not drain in time")
}

func countTerminals(messages []string) int {
	n := 0
	for _, m := range messages {
		if strings.HasPrefix(m, "✅") || strings.HasPrefix(m, "❌") {
			n++
		}
	}
	return n
}

func TestJobHappyPathNotifications(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewRunner(returnRecord(testRecord()), returnPlan(testPlan()), returnResult(testResult()), notifier)

	r.Start(testJob())
	drain(t, r)

	msgs := notifier.messages("C100")
	require.Len(t, msgs, 5)

	assert.Contains(t, msgs[0], "a1b2c3d4", "received message carries the short job ID")
	assert.Contains(t, msgs[0], "Acme Robotics")
	assert.Equal(t, "📊 **Step 1/4:** Extracting client data for Acme Robotics from Notion...", msgs[1])
	assert.Equal(t, "🧠 **Step 2/4:** Generating strategic analysis and narrative...", msgs[2])
	assert.Equal(t, "📄 **Step 3/4:** Creating formatted Google Doc...", msgs[3])

	assert.Contains(t, msgs[4], "✅ **Pitch Plan Complete - Acme Robotics**")
	assert.Contains(t, msgs[4], "https://docs.google.com/document/d/doc-1/edit")
	assert.Contains(t, msgs[4], "dana@nest.agency, lee@nest.agency")
	assert.Contains(t, msgs[4], "2025-01-15 10:30:00")

	assert.Equal(t, 1, countTerminals(msgs))
}

func TestJobClientNotFound(t *testing.T) {
	notifier := &recordingNotifier{}
	var generatorCalls, publisherCalls atomic.Int64

	r := NewRunner(
		extractorFunc(func(context.Context, string) (model.ClientRecord, error) {
			return model.ClientRecord{}, extract.ErrNotFound
		}),
		generatorFunc(func(context.Context, model.ClientRecord) (*model.PitchPlan, error) {
			generatorCalls.Add(1)
			return testPlan(), nil
		}),
		publisherFunc(func(context.Context, *model.PitchPlan) (*publish.Result, error) {
			publisherCalls.Add(1)
			return testResult(), nil
		}),
		notifier,
	)

	r.Start(testJob())
	drain(t, r)

	msgs := notifier.messages("C100")
	require.Len(t, msgs, 3)
	assert.Equal(t, "❌ **Client not found:** Could not find 'Acme Robotics' in Notion.", msgs[2])
	assert.Equal(t, 1, countTerminals(msgs))

	assert.EqualValues(t, 0, generatorCalls.Load(), "generator must not run for a missing client")
	assert.EqualValues(t, 0, publisherCalls.Load())
}

func TestJobExtractionFaultIsSystemError(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewRunner(
		extractorFunc(func(context.Context, string) (model.ClientRecord, error) {
			return model.ClientRecord{}, errors.New("notion: unexpected status 500")
		}),
		returnPlan(testPlan()),
		returnResult(testResult()),
		notifier,
	)

	r.Start(testJob())
	drain(t, r)

	msgs := notifier.messages("C100")
	require.Len(t, msgs, 3)
	assert.True(t, strings.HasPrefix(msgs[2], "❌ **System Error:**"))
	assert.Contains(t, msgs[2], "unexpected status 500")
	assert.Equal(t, 1, countTerminals(msgs))
}

func TestJobGenerationFailureNamesStage(t *testing.T) {
	notifier := &recordingNotifier{}
	var publisherCalls atomic.Int64

	r := NewRunner(
		returnRecord(testRecord()),
		generatorFunc(func(context.Context, model.ClientRecord) (*model.PitchPlan, error) {
			return nil, &pipeline.StageError{
				Stage: model.StageNarrativeDevelopment,
				Err:   errors.New("provider 429"),
			}
		}),
		publisherFunc(func(context.Context, *model.PitchPlan) (*publish.Result, error) {
			publisherCalls.Add(1)
			return testResult(), nil
		}),
		notifier,
	)

	r.Start(testJob())
	drain(t, r)

	msgs := notifier.messages("C100")
	require.Len(t, msgs, 4)
	assert.Equal(t, "❌ **Generation failed:** Failed at narrative development step", msgs[3])
	assert.Equal(t, 1, countTerminals(msgs))
	assert.EqualValues(t, 0, publisherCalls.Load(), "publisher must not run after a failed pipeline")
}

func TestJobPublishFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	r := NewRunner(
		returnRecord(testRecord()),
		returnPlan(testPlan()),
		publisherFunc(func(context.Context, *model.PitchPlan) (*publish.Result, error) {
			return nil, publish.ErrNoDocumentURL
		}),
		notifier,
	)

	r.Start(testJob())
	drain(t, r)

	msgs := notifier.messages("C100")
	require.Len(t, msgs, 5)
	assert.Equal(t, "❌ **Document creation failed**", msgs[4])
	assert.Equal(t, 1, countTerminals(msgs))
}

func TestJobPanicBecomesSystemError(t *testing.T) {
	notifier := &recordingNotifier{}
	var publisherCalls atomic.Int64

	r := NewRunner(
		returnRecord(testRecord()),
		generatorFunc(func(context.Context, model.ClientRecord) (*model.PitchPlan, error) {
			panic("nil pointer in prompt builder")
		}),
		publisherFunc(func(context.Context, *model.PitchPlan) (*publish.Result, error) {
			publisherCalls.Add(1)
			return testResult(), nil
		}),
		notifier,
	)

	r.Start(testJob())
	drain(t, r)

	msgs := notifier.messages("C100")
	require.Len(t, msgs, 4)
	assert.Equal(t, "❌ **System Error:** nil pointer in prompt builder", msgs[3])
	assert.Equal(t, 1, countTerminals(msgs))
	assert.EqualValues(t, 0, publisherCalls.Load())
}

func TestJobNotifierFailuresDoNotAbort(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("slack down")}
	var extractorCalls, generatorCalls, publisherCalls atomic.Int64

	r := NewRunner(
		extractorFunc(func(context.Context, string) (model.ClientRecord, error) {
			extractorCalls.Add(1)
			return testRecord(), nil
		}),
		generatorFunc(func(context.Context, model.ClientRecord) (*model.PitchPlan, error) {
			generatorCalls.Add(1)
			return testPlan(), nil
		}),
		publisherFunc(func(context.Context, *model.PitchPlan) (*publish.Result, error) {
			publisherCalls.Add(1)
			return testResult(), nil
		}),
		notifier,
	)

	r.Start(testJob())
	drain(t, r)

	assert.EqualValues(t, 1, extractorCalls.Load())
	assert.EqualValues(t, 1, generatorCalls.Load())
	assert.EqualValues(t, 1, publisherCalls.Load())
	assert.Len(t, notifier.messages("C100"), 5, "messages are still attempted in order")
}

func TestConcurrentJobsKeepChannelsSeparate(t *testing.T) {
	notifier := &recordingNotifier{}
	release := make(chan struct{})

	r := NewRunner(
		extractorFunc(func(_ context.Context, name string) (model.ClientRecord, error) {
			rec := model.ClientRecord{Name: name}
			rec.Normalize()
			return rec, nil
		}),
		generatorFunc(func(_ context.Context, record model.ClientRecord) (*model.PitchPlan, error) {
			<-release
			return &model.PitchPlan{
				ClientName:          record.Name,
				StrategicFoundation: "f",
				Narrative:           "n",
				FinalPlan:           "p",
				GeneratedAt:         time.Now(),
			}, nil
		}),
		returnResult(testResult()),
		notifier,
	)

	jobs := []model.Job{
		{ID: "job-1", ClientName: "Acme", ChannelID: "C1", UserID: "U1"},
		{ID: "job-2", ClientName: "Globex", ChannelID: "C2", UserID: "U2"},
		{ID: "job-3", ClientName: "Initech", ChannelID: "C3", UserID: "U3"},
	}
	for _, j := range jobs {
		r.Start(j)
	}

	require.Eventually(t, func() bool { return r.Active() == 3 },
		2*time.Second, 10*time.Millisecond, "all jobs should be in flight")

	close(release)
	drain(t, r)
	assert.EqualValues(t, 0, r.Active())

	for _, j := range jobs {
		msgs := notifier.messages(j.ChannelID)
		require.Len(t, msgs, 5, "channel %s", j.ChannelID)
		assert.Equal(t, fmt.Sprintf("📊 **Step 1/4:** Extracting client data for %s from Notion...", j.ClientName), msgs[1])
		assert.Contains(t, msgs[4], fmt.Sprintf("✅ **Pitch Plan Complete - %s**", j.ClientName))
		assert.Equal(t, 1, countTerminals(msgs))
	}
}

func TestStartReturnsWhileJobRuns(t *testing.T) {
	notifier := &recordingNotifier{}
	block := make(chan struct{})

	r := NewRunner(
		returnRecord(testRecord()),
		generatorFunc(func(context.Context, model.ClientRecord) (*model.PitchPlan, error) {
			<-block
			return testPlan(), nil
		}),
		returnResult(testResult()),
		notifier,
	)

	r.Start(testJob())

	require.Eventually(t, func() bool { return r.Active() == 1 },
		2*time.Second, 10*time.Millisecond)
	assert.False(t, r.Wait(50*time.Millisecond), "drain should time out while the job is blocked")

	close(block)
	drain(t, r)
	assert.EqualValues(t, 0, r.Active())
}
