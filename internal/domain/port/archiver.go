package port

import "context"

// Archiver packs extracted frame files into a single archive file.
type Archiver interface {
	CreateArchive(ctx context.Context, filePaths []string, outputPath string) error
}
