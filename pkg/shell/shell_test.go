package shell

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_CapturesStdout(t *testing.T) {
	r := &Runner{}
	out, err := r.Run(testLogger(), t.TempDir(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("stdout = %q, want %q", out, "hello")
	}
}

func TestRunner_RunsInDirectory(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{}
	out, err := r.Run(testLogger(), dir, "pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("pwd output %q does not mention %q", out, dir)
	}
}

func TestRunner_NonZeroExitCarriesStderr(t *testing.T) {
	r := &Runner{}
	_, err := r.Run(testLogger(), t.TempDir(), "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not carry stderr", err)
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	r := &Runner{}
	_, err := r.Run(testLogger(), t.TempDir(), "definitely-not-a-real-binary")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Errorf("error %q does not report the missing binary", err)
	}
}
