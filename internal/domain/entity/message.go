package entity

import "github.com/google/uuid"

// ExtractionJobMessage is the inbound message from the frames.extract queue.
type ExtractionJobMessage struct {
	JobID     uuid.UUID          `json:"job_id"`
	UserID    string             `json:"user_id"`
	VideoKey  string             `json:"video_key"`
	FileSize  int64              `json:"file_size"`
	UserEmail string             `json:"user_email"`
	Settings  ExtractionSettings `json:"settings"`
}

// ExtractionStatusMessage is the outbound message published to the
// frames.status queue.
type ExtractionStatusMessage struct {
	JobID        uuid.UUID `json:"job_id"`
	UserID       string    `json:"user_id"`
	Status       JobStatus `json:"status"`
	VideoKey     string    `json:"video_key"`
	ArchiveKey   string    `json:"archive_key,omitempty"`
	FrameCount   int       `json:"frame_count,omitempty"`
	Duration     float64   `json:"duration_seconds,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Attempt      int       `json:"attempt"`
	MaxAttempts  int       `json:"max_attempts"`
}
