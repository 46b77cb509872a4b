package main

import (
	"log/slog"
	"time"

	"github.com/systemstart/conveyor/pkg/pipeline"
	"github.com/systemstart/conveyor/pkg/steps"
)

// releaseWorkflow is a sample pipeline showing how workflows compose:
// a nested build workflow, secret-backed signing material, artifact
// staging with automatic teardown, and a retried upload against an
// eventually-consistent release host.
type releaseWorkflow struct{}

func (releaseWorkflow) Name() string { return "release" }

func (releaseWorkflow) LogLevel() slog.Level { return slog.LevelDebug }

func (releaseWorkflow) Run(ctx *pipeline.Context) error {
	commit, err := pipeline.RunStep(ctx, &steps.Command{Program: "git", Args: []string{"rev-parse", "--short", "HEAD"}})
	if err != nil {
		return err
	}

	version := ctx.Getenv("RELEASE_VERSION")
	if version == "" {
		version = "dev-" + commit
	}

	if err := pipeline.RunWorkflow(ctx, buildWorkflow{version: version, commit: commit}); err != nil {
		return err
	}

	keyPath, err := pipeline.RunStep(ctx, &steps.WriteSecretFile{
		Secret: "RELEASE_SIGNING_KEY",
		Path:   ".keys/release.pem",
	})
	if err != nil {
		return err
	}

	if _, err := pipeline.RunStep(ctx, &steps.Command{
		Program: "sh",
		Args:    []string{"-c", "scripts/sign.sh " + keyPath},
	}); err != nil {
		return err
	}

	if _, err := pipeline.RunStep(ctx, &steps.CollectArtifacts{
		Include:    []string{"dist/**"},
		StagingDir: ".staging",
	}); err != nil {
		return err
	}

	// The release host registers uploads asynchronously; poll until
	// the release shows up.
	delays := []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}
	_, err = pipeline.Retry(ctx, delays, func() (string, error) {
		return ctx.Exec("sh", "-c", "scripts/publish.sh "+version)
	})
	return err
}

// buildWorkflow renders release metadata and compiles the project.
// Run from the workspace root; any directory changes it makes are
// rolled back when it returns.
type buildWorkflow struct {
	version string
	commit  string
}

func (w buildWorkflow) Name() string { return "build" }

func (w buildWorkflow) LogLevel() slog.Level { return slog.LevelInfo }

func (w buildWorkflow) Run(ctx *pipeline.Context) error {
	if _, err := pipeline.RunStep(ctx, &steps.RenderTemplates{
		Include: []string{"release/**"},
		Data: map[string]any{
			"Version": w.version,
			"Commit":  w.commit,
		},
	}); err != nil {
		return err
	}

	_, err := pipeline.RunStep(ctx, &steps.Command{Program: "make", Args: []string{"build"}})
	return err
}

func main() {
	pipeline.Main(releaseWorkflow{})
}
