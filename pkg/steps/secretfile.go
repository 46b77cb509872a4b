package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/systemstart/conveyor/pkg/pipeline"
)

// WriteSecretFile resolves a secret and writes it to a file relative
// to the working directory (a signing key, a provisioning profile).
// The file is removed during unwind, whether or not the run as a whole
// succeeded. Its output is the absolute path of the written file.
type WriteSecretFile struct {
	Secret string
	// Path is relative to the working directory.
	Path string

	written string
}

func (s *WriteSecretFile) Name() string { return "write-secret-file" }

func (s *WriteSecretFile) Run(ctx *pipeline.Context) (string, error) {
	data, err := ctx.Secret(s.Secret)
	if err != nil {
		return "", fmt.Errorf("resolving secret: %w", err)
	}

	path := filepath.Join(ctx.WorkDir, s.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("creating parent directories: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing secret file: %w", err)
	}
	s.written = path

	ctx.Logger.Info("secret written", "secret", s.Secret, "path", s.Path)
	return path, nil
}

// Cleanup removes the secret from disk.
func (s *WriteSecretFile) Cleanup(ctx *pipeline.Context, runErr error) error {
	if s.written == "" {
		return nil
	}
	ctx.Logger.Debug("removing secret file", "path", s.written)
	if err := os.Remove(s.written); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing secret file: %w", err)
	}
	return nil
}
