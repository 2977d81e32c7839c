// Package extract decodes a video sequentially and persists a sampled
// subset of its frames as JPEG files.
package extract

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// DefaultQuality is the JPEG quality used when the requested value is
// outside [1,100].
const DefaultQuality = 95

// framePattern yields frame_000000.jpg, frame_000001.jpg, ...
const framePattern = "frame_%06d.jpg"

// Options control which decoded frames are kept and how they are written.
type Options struct {
	// OutputDir receives the numbered JPEG files. Created if absent.
	OutputDir string

	// Interval keeps every Interval-th frame. Values below 1 are treated
	// as 1.
	Interval int

	// TargetFPS, when set and lower than the source frame rate, overrides
	// Interval so the output approximates this rate.
	TargetFPS float64

	// MaxFrames caps the number of saved frames. Zero means no cap.
	MaxFrames int

	// Quality is the JPEG quality in [1,100]. Out-of-range values fall
	// back to DefaultQuality.
	Quality int

	// Progress, when non-nil, is invoked after each saved frame with the
	// running saved count.
	Progress func(saved int)
}

// VideoInfo describes the source video as reported by ffprobe.
type VideoInfo struct {
	Width       int
	Height      int
	FPS         float64
	TotalFrames int
	Duration    float64
}

// Plan is the resolved extraction schedule for one video.
type Plan struct {
	Video     VideoInfo
	Interval  int
	Quality   int
	MaxFrames int
	Estimated int
}

// Result summarizes a finished extraction run.
type Result struct {
	FramePaths    []string
	SavedCount    int
	DecodedCount  int
	VideoDuration float64
}

// Extractor reads video frames through an ffmpeg pipe and writes the
// selected ones to disk.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Probe opens the video just long enough to read its stream metadata.
func (e *Extractor) Probe(videoPath string) (VideoInfo, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return VideoInfo{}, fmt.Errorf("video file not found: %w", err)
	}
	if !IsSupported(videoPath) {
		return VideoInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(videoPath))
	}

	video, err := vidio.NewVideo(videoPath)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("open video: %w", err)
	}
	defer video.Close()

	return VideoInfo{
		Width:       video.Width(),
		Height:      video.Height(),
		FPS:         video.FPS(),
		TotalFrames: video.Frames(),
		Duration:    video.Duration(),
	}, nil
}

// Plan probes the video and resolves Options against its metadata.
func (e *Extractor) Plan(videoPath string, opts Options) (*Plan, error) {
	info, err := e.Probe(videoPath)
	if err != nil {
		return nil, err
	}

	quality, fell := ClampQuality(opts.Quality)
	if fell {
		e.logger.Warn("jpeg quality out of range, using default",
			zap.Int("requested", opts.Quality),
			zap.Int("default", DefaultQuality),
		)
	}

	interval := EffectiveInterval(opts.Interval, opts.TargetFPS, info.FPS)

	return &Plan{
		Video:     info,
		Interval:  interval,
		Quality:   quality,
		MaxFrames: opts.MaxFrames,
		Estimated: EstimateFrames(info.TotalFrames, interval, opts.MaxFrames),
	}, nil
}

// Extract decodes videoPath frame by frame and saves every plan-selected
// frame into opts.OutputDir.
func (e *Extractor) Extract(ctx context.Context, videoPath string, opts Options) (*Result, error) {
	plan, err := e.Plan(videoPath, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	video, err := vidio.NewVideo(videoPath)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	defer video.Close()

	frame := image.NewRGBA(image.Rect(0, 0, video.Width(), video.Height()))
	video.SetFrameBuffer(frame.Pix)

	e.logger.Info("starting extraction",
		zap.String("video", videoPath),
		zap.Int("interval", plan.Interval),
		zap.Int("estimated_frames", plan.Estimated),
		zap.Int("quality", plan.Quality),
	)

	result := &Result{VideoDuration: plan.Video.Duration}
	for video.Read() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if plan.MaxFrames > 0 && result.SavedCount >= plan.MaxFrames {
			break
		}

		if result.DecodedCount%plan.Interval == 0 {
			name := fmt.Sprintf(framePattern, result.SavedCount)
			path := filepath.Join(opts.OutputDir, name)
			if err := imaging.Save(frame, path, imaging.JPEGQuality(plan.Quality)); err != nil {
				return nil, fmt.Errorf("save frame %d: %w", result.SavedCount, err)
			}
			result.FramePaths = append(result.FramePaths, path)
			result.SavedCount++
			if opts.Progress != nil {
				opts.Progress(result.SavedCount)
			}
		}

		result.DecodedCount++
	}

	e.logger.Info("extraction finished",
		zap.Int("saved_frames", result.SavedCount),
		zap.Int("decoded_frames", result.DecodedCount),
		zap.String("output_dir", opts.OutputDir),
	)

	return result, nil
}

// ExtractEvery keeps one frame per intervalSeconds of video time. The
// stride is derived from the source frame rate and the run proceeds as in
// Extract.
func (e *Extractor) ExtractEvery(ctx context.Context, videoPath string, intervalSeconds float64, opts Options) (*Result, error) {
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("interval seconds must be positive, got %v", intervalSeconds)
	}

	info, err := e.Probe(videoPath)
	if err != nil {
		return nil, err
	}

	opts.Interval = IntervalForSeconds(info.FPS, intervalSeconds)
	opts.TargetFPS = 0
	return e.Extract(ctx, videoPath, opts)
}

// EffectiveInterval resolves the frame stride. A target rate below the
// source rate wins over the explicit stride.
func EffectiveInterval(interval int, targetFPS, sourceFPS float64) int {
	if interval < 1 {
		interval = 1
	}
	if targetFPS > 0 && targetFPS < sourceFPS {
		interval = max(1, int(sourceFPS/targetFPS))
	}
	return interval
}

// IntervalForSeconds converts a time spacing into a frame stride.
func IntervalForSeconds(sourceFPS, seconds float64) int {
	return max(1, int(sourceFPS*seconds))
}

// ClampQuality validates a JPEG quality value. Out-of-range values fall
// back to DefaultQuality; the second return reports whether that happened.
func ClampQuality(quality int) (int, bool) {
	if quality < 1 || quality > 100 {
		return DefaultQuality, true
	}
	return quality, false
}

// EstimateFrames predicts how many frames a run will save.
func EstimateFrames(totalFrames, interval, maxFrames int) int {
	if interval < 1 {
		interval = 1
	}
	estimated := totalFrames / interval
	if maxFrames > 0 && estimated > maxFrames {
		estimated = maxFrames
	}
	return estimated
}
