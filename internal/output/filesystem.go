// Package output writes a generation result's artifacts to disk: parent
// directories, file content, and Unix permission bits.
package output

import (
	"context"
	"os"
	"path/filepath"

	"github.com/clafollett/agenterra-go/internal/generation"
)

// Service writes a GenerationResult's artifacts to their final
// destination (C12's use cases depend on this port).
type Service interface {
	WriteArtifacts(ctx context.Context, artifacts []generation.Artifact) error
	EnsureDirectory(ctx context.Context, path string) error
}

const defaultFilePermissions = 0o644

// FilesystemService writes artifacts directly to the local filesystem.
type FilesystemService struct{}

func NewFilesystemService() FilesystemService { return FilesystemService{} }

func (FilesystemService) WriteArtifacts(_ context.Context, artifacts []generation.Artifact) error {
	for _, artifact := range artifacts {
		dir := filepath.Dir(artifact.Path)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return generation.Wrap(generation.KindOutput, err, "create directory %s", dir)
			}
		}

		perm := os.FileMode(defaultFilePermissions)
		if artifact.Permissions != nil {
			perm = os.FileMode(*artifact.Permissions)
		}

		if err := os.WriteFile(artifact.Path, []byte(artifact.Content), perm); err != nil {
			return generation.Wrap(generation.KindOutput, err, "write file %s", artifact.Path)
		}

		if artifact.Permissions != nil {
			if err := os.Chmod(artifact.Path, perm); err != nil {
				return generation.Wrap(generation.KindOutput, err, "set permissions on %s", artifact.Path)
			}
		}
	}

	return nil
}

func (FilesystemService) EnsureDirectory(_ context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return generation.Wrap(generation.KindOutput, err, "create directory %s", path)
	}
	return nil
}

var _ Service = FilesystemService{}
