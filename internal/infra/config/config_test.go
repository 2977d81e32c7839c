package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkerDefaults(t *testing.T) {
	cfg, err := LoadWorker()
	require.NoError(t, err)

	assert.Equal(t, "frames.extract", cfg.RabbitMQExtractQueue)
	assert.Equal(t, 1, cfg.FrameInterval)
	assert.Equal(t, 95, cfg.JPEGQuality)
	assert.Equal(t, 0, cfg.MaxFrames)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, "/tmp/framegrab", cfg.TempDir)
}

func TestLoadWorkerOverrides(t *testing.T) {
	t.Setenv("JPEG_QUALITY", "80")
	t.Setenv("MAX_FRAMES", "100")
	t.Setenv("WORKER_COUNT", "8")

	cfg, err := LoadWorker()
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.Equal(t, 100, cfg.MaxFrames)
	assert.Equal(t, 8, cfg.WorkerCount)
}

func TestLoadCLIDefaults(t *testing.T) {
	cfg, err := LoadCLI()
	require.NoError(t, err)

	assert.Equal(t, "jpg_frames", cfg.OutputDir)
	assert.Equal(t, 1, cfg.Interval)
	assert.Equal(t, 95, cfg.JPEGQuality)
}
