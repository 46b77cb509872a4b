package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/systemstart/conveyor/pkg/pipeline"
)

// CollectArtifacts copies files matching the Include globs into a
// staging directory under the workspace, ready for upload by a later
// step. The staging directory is removed during unwind. Its output is
// the list of collected files, relative to the working directory.
type CollectArtifacts struct {
	Include []string
	Exclude []string
	// StagingDir is relative to the working directory.
	StagingDir string

	staged string
}

func (s *CollectArtifacts) Name() string { return "collect-artifacts" }

func (s *CollectArtifacts) Run(ctx *pipeline.Context) ([]string, error) {
	files, err := filterFiles(os.DirFS(ctx.WorkDir), s.Include, s.Exclude)
	if err != nil {
		return nil, fmt.Errorf("filtering artifacts: %w", err)
	}

	staging := filepath.Join(ctx.WorkDir, s.StagingDir)
	if err := os.MkdirAll(staging, 0o750); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	s.staged = staging

	for _, file := range files {
		if err := copyFile(ctx.WorkDir, staging, file); err != nil {
			return nil, fmt.Errorf("collecting %s: %w", file, err)
		}
	}

	ctx.Logger.Info("artifacts collected", "count", len(files), "dir", s.StagingDir)
	return files, nil
}

// Cleanup removes the staging directory whether or not the run
// succeeded; artifacts are expected to have been uploaded by then.
func (s *CollectArtifacts) Cleanup(ctx *pipeline.Context, runErr error) error {
	if s.staged == "" {
		return nil
	}
	ctx.Logger.Debug("removing artifact staging directory", "dir", s.staged)
	if err := os.RemoveAll(s.staged); err != nil {
		return fmt.Errorf("removing staging directory: %w", err)
	}
	return nil
}

func copyFile(workDir, staging, rel string) error {
	data, err := os.ReadFile(filepath.Join(workDir, rel))
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	target := filepath.Join(staging, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	return nil
}
