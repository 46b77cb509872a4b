package steps

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/conveyor/pkg/pipeline"
	"github.com/systemstart/conveyor/pkg/secrets"
	"github.com/systemstart/conveyor/pkg/shell"
)

// newTestContext builds a pipeline context rooted at a temp directory
// with a discarding logger.
func newTestContext(t *testing.T) *pipeline.Context {
	t.Helper()
	return &pipeline.Context{
		WorkDir: t.TempDir(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Secrets: secrets.Env{},
		Shell:   &shell.Runner{},
	}
}

// writeTestFile writes content to a file under dir, creating parent
// directories and failing the test on error.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
