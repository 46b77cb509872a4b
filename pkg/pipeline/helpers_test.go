package pipeline

import (
	"io"
	"log/slog"
	"testing"

	"github.com/systemstart/conveyor/pkg/secrets"
	"github.com/systemstart/conveyor/pkg/shell"
)

// newTestContext builds a Context rooted at a temp directory with a
// discarding logger.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	return &Context{
		WorkDir: t.TempDir(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Secrets: secrets.Env{},
		Shell:   &shell.Runner{},
	}
}

// recordingStep logs its run and cleanup invocations (with the error
// each cleanup received) into a shared trace.
type recordingStep struct {
	name       string
	trace      *[]string
	runErr     error
	cleanupErr error
	// seen captures the error passed to Cleanup.
	seen []error
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Run(ctx *Context) (string, error) {
	*s.trace = append(*s.trace, "run:"+s.name)
	if s.runErr != nil {
		return "", s.runErr
	}
	return s.name + "-output", nil
}

func (s *recordingStep) Cleanup(ctx *Context, runErr error) error {
	*s.trace = append(*s.trace, "cleanup:"+s.name)
	s.seen = append(s.seen, runErr)
	return s.cleanupErr
}

// plainStep has no cleanup.
type plainStep struct {
	name  string
	trace *[]string
}

func (s *plainStep) Name() string { return s.name }

func (s *plainStep) Run(ctx *Context) (string, error) {
	*s.trace = append(*s.trace, "run:"+s.name)
	return s.name + "-output", nil
}

// stepsWorkflow runs a fixed sequence of steps, stopping at the first
// failure.
type stepsWorkflow struct {
	name  string
	steps []Step[string]
}

func (w *stepsWorkflow) Name() string { return w.name }

func (w *stepsWorkflow) LogLevel() slog.Level { return slog.LevelInfo }

func (w *stepsWorkflow) Run(ctx *Context) error {
	for _, s := range w.steps {
		if _, err := RunStep(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// funcWorkflow adapts a function to the Workflow interface.
type funcWorkflow struct {
	name string
	run  func(ctx *Context) error
}

func (w *funcWorkflow) Name() string { return w.name }

func (w *funcWorkflow) LogLevel() slog.Level { return slog.LevelInfo }

func (w *funcWorkflow) Run(ctx *Context) error { return w.run(ctx) }
