package port

import (
	"context"

	"github.com/framegrab/framegrab/internal/domain/entity"
)

type FrameExtractionResult struct {
	FramePaths    []string
	FrameCount    int
	VideoDuration float64
}

// FrameExtractor samples frames out of a local video file into outputDir
// according to the job settings.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, videoPath string, outputDir string, settings entity.ExtractionSettings) (*FrameExtractionResult, error)
}
