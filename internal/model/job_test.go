package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	before := time.Now()
	j := NewJob("Acme Robotics", "C123", "U456")

	assert.NotEmpty(t, j.ID)
	assert.Equal(t, "Acme Robotics", j.ClientName)
	assert.Equal(t, "C123", j.ChannelID)
	assert.Equal(t, "U456", j.UserID)
	assert.WithinRange(t, j.CreatedAt, before, time.Now())

	other := NewJob("Acme Robotics", "C123", "U456")
	assert.NotEqual(t, j.ID, other.ID)
}

func TestJobStateValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state JobState
		want  string
	}{
		{JobReceived, "received"},
		{JobExtracting, "extracting"},
		{JobGenerating, "generating"},
		{JobPublishing, "publishing"},
		{JobDone, "done"},
		{JobFailed, "failed"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(tt.state))
		})
	}
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "uuid", id: "a1b2c3d4-e5f6-7890-abcd-ef1234567890", want: "a1b2c3d4"},
		{name: "short", id: "abc", want: "abc"},
		{name: "empty", id: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Job{ID: tt.id}.ShortID())
		})
	}
}
