package ffmpeg

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArchive(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"frame_000000.jpg", "frame_000001.jpg"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("jpegdata"), 0644))
		paths = append(paths, p)
	}

	out := filepath.Join(dir, "frames.zip")
	z := NewZipArchiver()
	require.NoError(t, z.CreateArchive(context.Background(), paths, out))

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 2)
	assert.Equal(t, "frame_000000.jpg", r.File[0].Name)
	assert.Equal(t, "frame_000001.jpg", r.File[1].Name)
}

func TestCreateArchiveMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frames.zip")

	z := NewZipArchiver()
	err := z.CreateArchive(context.Background(), []string{filepath.Join(dir, "gone.jpg")}, out)
	require.Error(t, err)
}

func TestCreateArchiveCancelledContext(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "frame_000000.jpg")
	require.NoError(t, os.WriteFile(p, []byte("jpegdata"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	z := NewZipArchiver()
	err := z.CreateArchive(ctx, []string{p}, filepath.Join(dir, "frames.zip"))
	require.ErrorIs(t, err, context.Canceled)
}
