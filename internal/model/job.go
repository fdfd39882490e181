package model

import (
	"time"

	"github.com/google/uuid"
)

// JobState tracks a pitch job through its lifecycle. Transitions are
// strictly ordered; done and failed are terminal.
type JobState string

const (
	JobReceived   JobState = "received"
	JobExtracting JobState = "extracting"
	JobGenerating JobState = "generating"
	JobPublishing JobState = "publishing"
	JobDone       JobState = "done"
	JobFailed     JobState = "failed"
)

// Job is one background pitch-plan request. Jobs live only in memory
// for the duration of their goroutine; there is no persisted history.
type Job struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	ChannelID  string    `json:"channel_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewJob creates a Job for one request with a fresh ID.
func NewJob(clientName, channelID, userID string) Job {
	return Job{
		ID:         uuid.NewString(),
		ClientName: clientName,
		ChannelID:  channelID,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}
}

// ShortID returns the leading segment of the job ID, enough to
// distinguish concurrent jobs in notification text.
func (j Job) ShortID() string {
	if len(j.ID) > 8 {
		return j.ID[:8]
	}
	return j.ID
}
