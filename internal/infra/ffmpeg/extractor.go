package ffmpeg

import (
	"context"

	"github.com/framegrab/framegrab/internal/domain/entity"
	"github.com/framegrab/framegrab/internal/domain/port"
	"github.com/framegrab/framegrab/internal/extract"
	"go.uber.org/zap"
)

// Extractor adapts the extract package to the FrameExtractor port, filling
// unset job settings from worker defaults.
type Extractor struct {
	core     *extract.Extractor
	defaults entity.ExtractionSettings
	logger   *zap.Logger
}

func NewExtractor(defaults entity.ExtractionSettings, logger *zap.Logger) *Extractor {
	return &Extractor{
		core:     extract.New(logger),
		defaults: defaults,
		logger:   logger,
	}
}

func (e *Extractor) ExtractFrames(ctx context.Context, videoPath string, outputDir string, settings entity.ExtractionSettings) (*port.FrameExtractionResult, error) {
	merged := e.merge(settings)

	result, err := e.core.Extract(ctx, videoPath, extract.Options{
		OutputDir: outputDir,
		Interval:  merged.FrameInterval,
		TargetFPS: merged.TargetFPS,
		MaxFrames: merged.MaxFrames,
		Quality:   merged.JPEGQuality,
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("frames extracted",
		zap.Int("count", result.SavedCount),
		zap.Float64("video_duration", result.VideoDuration),
	)

	return &port.FrameExtractionResult{
		FramePaths:    result.FramePaths,
		FrameCount:    result.SavedCount,
		VideoDuration: result.VideoDuration,
	}, nil
}

func (e *Extractor) merge(s entity.ExtractionSettings) entity.ExtractionSettings {
	if s.FrameInterval == 0 {
		s.FrameInterval = e.defaults.FrameInterval
	}
	if s.TargetFPS == 0 {
		s.TargetFPS = e.defaults.TargetFPS
	}
	if s.MaxFrames == 0 {
		s.MaxFrames = e.defaults.MaxFrames
	}
	if s.JPEGQuality == 0 {
		s.JPEGQuality = e.defaults.JPEGQuality
	}
	return s
}
