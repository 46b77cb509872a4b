package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/systemstart/conveyor/pkg/secrets"
	"github.com/systemstart/conveyor/pkg/shell"
)

// Context is the ambient state shared by every step and workflow of a
// run: the filesystem cursor, the logger, secret and shell accessors,
// and the cleanup stack. One Context exists per run; it is passed by
// pointer so mutations are visible to all subsequent reads. Execution
// is strictly sequential, so no locking is needed.
type Context struct {
	// WorkDir is the current working directory. Change it through
	// Chdir so the process directory stays in sync; shell commands
	// run against it.
	WorkDir string

	Logger  *slog.Logger
	Secrets secrets.Resolver
	Shell   *shell.Runner

	// CurrentStep and CurrentWorkflow identify what is executing
	// right now. Diagnostics only; at most one of each is set at
	// any instant.
	CurrentStep     string
	CurrentWorkflow string

	cleanup cleanupStack
}

// NewContext returns a Context rooted at the process's current
// directory, logging through the default slog logger and resolving
// secrets from the environment.
func NewContext() (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	return &Context{
		WorkDir: wd,
		Logger:  slog.Default(),
		Secrets: secrets.Env{},
		Shell:   &shell.Runner{},
	}, nil
}

// Chdir changes the process working directory and records the new
// path. Callers that change the directory inside a step are expected
// to change it back; RunWorkflow restores it at workflow boundaries.
func (c *Context) Chdir(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("changing directory to %s: %w", dir, err)
	}
	c.WorkDir = dir
	return nil
}

// Exec runs an external program in the current working directory and
// returns its stdout.
func (c *Context) Exec(name string, args ...string) (string, error) {
	return c.Shell.Run(c.Logger, c.WorkDir, name, args...)
}

// Getenv is a pass-through to the process environment.
func (c *Context) Getenv(key string) string { return os.Getenv(key) }

// LookupEnv is a pass-through to the process environment.
func (c *Context) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// Setenv is a pass-through to the process environment. Steps that set
// variables should unset them again in their cleanup.
func (c *Context) Setenv(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Secret resolves a named secret through the configured resolver.
func (c *Context) Secret(name string) ([]byte, error) {
	return c.Secrets.Resolve(name)
}
