package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

func TestEffectiveInterval(t *testing.T) {
	tests := []struct {
		name      string
		interval  int
		targetFPS float64
		sourceFPS float64
		want      int
	}{
		{"plain stride", 3, 0, 30, 3},
		{"stride below one is clamped", 0, 0, 30, 1},
		{"target fps overrides stride", 5, 10, 30, 3},
		{"target fps above source is ignored", 2, 60, 30, 2},
		{"target fps equal to source is ignored", 2, 30, 30, 2},
		{"target fps near source clamps to one", 1, 29, 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveInterval(tt.interval, tt.targetFPS, tt.sourceFPS))
		})
	}
}

func TestIntervalForSeconds(t *testing.T) {
	assert.Equal(t, 30, IntervalForSeconds(30, 1))
	assert.Equal(t, 60, IntervalForSeconds(30, 2))
	assert.Equal(t, 15, IntervalForSeconds(30, 0.5))
	// Sub-frame spacing degrades to every frame.
	assert.Equal(t, 1, IntervalForSeconds(30, 0.01))
}

func TestEstimateFrames(t *testing.T) {
	assert.Equal(t, 100, EstimateFrames(100, 1, 0))
	assert.Equal(t, 33, EstimateFrames(100, 3, 0))
	assert.Equal(t, 10, EstimateFrames(100, 3, 10))
	assert.Equal(t, 33, EstimateFrames(100, 3, 50))
	assert.Equal(t, 100, EstimateFrames(100, 0, 0))
}

func TestClampQuality(t *testing.T) {
	for _, q := range []int{1, 50, 95, 100} {
		got, fell := ClampQuality(q)
		assert.Equal(t, q, got)
		assert.False(t, fell)
	}
	for _, q := range []int{0, -5, 101, 1000} {
		got, fell := ClampQuality(q)
		assert.Equal(t, DefaultQuality, got)
		assert.True(t, fell)
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("clip.mp4"))
	assert.True(t, IsSupported("CLIP.AVI"))
	assert.True(t, IsSupported("/videos/a.mkv"))
	assert.False(t, IsSupported("clip.webm"))
	assert.False(t, IsSupported("clip"))
	assert.False(t, IsSupported("clip.jpg"))
}

func TestProbeMissingFile(t *testing.T) {
	e := New(zap.NewNop())
	_, err := e.Probe(filepath.Join(t.TempDir(), "nope.mp4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProbeUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.webm")
	require.NoError(t, os.WriteFile(path, []byte("not a video"), 0644))

	e := New(zap.NewNop())
	_, err := e.Probe(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

// testVideo synthesizes a 2s 320x240 10fps clip, 20 frames total.
func testVideo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	path := filepath.Join(t.TempDir(), "test.mp4")
	err := ffmpeggo.Input("testsrc=duration=2:size=320x240:rate=10", ffmpeggo.KwArgs{"f": "lavfi"}).
		Output(path, ffmpeggo.KwArgs{"vcodec": "libx264", "pix_fmt": "yuv420p"}).
		OverWriteOutput().
		Run()
	require.NoError(t, err)
	return path
}

func TestExtractEveryFrame(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	e := New(zap.NewNop())
	result, err := e.Extract(context.Background(), video, Options{
		OutputDir: outDir,
		Interval:  1,
		Quality:   95,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, result.DecodedCount)
	assert.Equal(t, 20, result.SavedCount)
	assert.Len(t, result.FramePaths, 20)
	assert.InDelta(t, 2.0, result.VideoDuration, 0.2)

	// Zero-padded sequential names, numbered by save order.
	for i, p := range result.FramePaths {
		assert.Equal(t, fmt.Sprintf("frame_%06d.jpg", i), filepath.Base(p))
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExtractWithStride(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	e := New(zap.NewNop())
	result, err := e.Extract(context.Background(), video, Options{
		OutputDir: outDir,
		Interval:  5,
		Quality:   95,
	})
	require.NoError(t, err)

	// Frames 0, 5, 10, 15 out of 20.
	assert.Equal(t, 4, result.SavedCount)
	assert.Equal(t, 20, result.DecodedCount)
}

func TestExtractMaxFramesCap(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	e := New(zap.NewNop())
	result, err := e.Extract(context.Background(), video, Options{
		OutputDir: outDir,
		Interval:  1,
		MaxFrames: 3,
		Quality:   95,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.SavedCount)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExtractTargetFPS(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	e := New(zap.NewNop())
	result, err := e.Extract(context.Background(), video, Options{
		OutputDir: outDir,
		Interval:  1,
		TargetFPS: 5, // source is 10fps, so stride becomes 2
		Quality:   95,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.SavedCount)
}

func TestExtractInvalidQualityFallsBack(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	e := New(zap.NewNop())
	result, err := e.Extract(context.Background(), video, Options{
		OutputDir: outDir,
		Interval:  10,
		Quality:   500,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SavedCount)
}

func TestExtractEvery(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	e := New(zap.NewNop())
	result, err := e.ExtractEvery(context.Background(), video, 1.0, Options{
		OutputDir: outDir,
		Quality:   95,
	})
	require.NoError(t, err)

	// 10fps, one frame per second: frames 0 and 10.
	assert.Equal(t, 2, result.SavedCount)
}

func TestExtractEveryRejectsNonPositiveInterval(t *testing.T) {
	e := New(zap.NewNop())
	_, err := e.ExtractEvery(context.Background(), "whatever.mp4", 0, Options{})
	require.Error(t, err)
}

func TestExtractProgressCallback(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	var calls []int
	e := New(zap.NewNop())
	result, err := e.Extract(context.Background(), video, Options{
		OutputDir: outDir,
		Interval:  5,
		Quality:   95,
		Progress:  func(saved int) { calls = append(calls, saved) },
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, calls)
	assert.Equal(t, 4, result.SavedCount)
}

func TestExtractCancelledContext(t *testing.T) {
	video := testVideo(t)
	outDir := filepath.Join(t.TempDir(), "frames")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(zap.NewNop())
	_, err := e.Extract(ctx, video, Options{OutputDir: outDir, Interval: 1, Quality: 95})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlanEstimate(t *testing.T) {
	video := testVideo(t)

	e := New(zap.NewNop())
	plan, err := e.Plan(video, Options{Interval: 5, Quality: 95})
	require.NoError(t, err)

	assert.Equal(t, 320, plan.Video.Width)
	assert.Equal(t, 240, plan.Video.Height)
	assert.InDelta(t, 10.0, plan.Video.FPS, 0.01)
	assert.Equal(t, 20, plan.Video.TotalFrames)
	assert.Equal(t, 5, plan.Interval)
	assert.Equal(t, 4, plan.Estimated)
}
