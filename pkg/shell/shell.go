package shell

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes external programs against a given working directory.
// The zero value is usable; Env, when set, replaces the inherited
// process environment for every invocation.
type Runner struct {
	Env []string
}

// Run logs the command line, executes it in dir, and returns captured
// stdout. A non-zero exit returns an error carrying the stderr tail.
func (r *Runner) Run(logger *slog.Logger, dir, name string, args ...string) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	logger.Info("running command", "command", name, "args", strings.Join(args, " "), "dir", dir)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w\nstderr: %s", name, err, stderr.String())
	}

	return stdout.String(), nil
}
