package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	settings := ExtractionSettings{FrameInterval: 2, JPEGQuality: 90}
	job := NewJob("user-1", "user-1/clip.mp4", 1024, settings, 5)

	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, "user-1", job.UserID)
	assert.Equal(t, settings, job.Settings)
	assert.Equal(t, 0, job.Attempt)
	assert.Equal(t, 5, job.MaxAttempts)
	assert.Nil(t, job.CompletedAt)
	assert.NotEqual(t, job.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestJobLifecycle(t *testing.T) {
	job := NewJob("user-1", "user-1/clip.mp4", 1024, ExtractionSettings{}, 2)

	job.MarkProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.Equal(t, 1, job.Attempt)

	job.MarkCompleted("user-1/frames_abc.zip", 17, 2.5)
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Equal(t, "user-1/frames_abc.zip", job.ArchiveKey)
	assert.Equal(t, 17, job.FrameCount)
	assert.Equal(t, 2.5, job.VideoDuration)
	require.NotNil(t, job.CompletedAt)
}

func TestJobRetryExhaustion(t *testing.T) {
	job := NewJob("user-1", "user-1/clip.mp4", 1024, ExtractionSettings{}, 2)

	assert.True(t, job.CanRetry())
	job.MarkProcessing()
	job.MarkFailed("extract_frames: boom")
	assert.True(t, job.CanRetry())
	assert.Equal(t, "extract_frames: boom", job.ErrorMessage)

	job.MarkProcessing()
	job.MarkFailed("extract_frames: boom again")
	assert.False(t, job.CanRetry())
}
