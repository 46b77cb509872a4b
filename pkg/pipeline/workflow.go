package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/systemstart/conveyor/pkg/logging"
	"github.com/systemstart/conveyor/pkg/platform"
)

// Workflow sequences steps and nested workflows. The root workflow's
// LogLevel configures the process-wide logger once, at Execute.
type Workflow interface {
	Name() string
	LogLevel() slog.Level
	Run(ctx *Context) error
}

const (
	exitOK      = 0
	exitFailure = 1
)

// RunWorkflow executes a child workflow. The working directory is
// snapshotted on entry and restored on every exit path; a failed
// restore is logged, never raised, so the run's own outcome is what
// the caller sees. Workflows carry no cleanup of their own and are
// not registered on the cleanup stack.
func RunWorkflow(ctx *Context, w Workflow) error {
	snapshot := ctx.WorkDir
	previous := ctx.CurrentWorkflow
	ctx.CurrentWorkflow = w.Name()

	defer func() {
		ctx.CurrentWorkflow = previous
		if err := ctx.Chdir(snapshot); err != nil {
			ctx.Logger.Error("failed to restore working directory", "workflow", w.Name(), "dir", snapshot, "error", err)
		}
	}()

	ctx.Logger.Info("running workflow", "workflow", w.Name())
	return w.Run(ctx)
}

// Run executes the root workflow and then unconditionally drains the
// cleanup stack, passing the terminal error (nil on success) to every
// registered cleanup, innermost first. It returns the terminal error.
func Run(ctx *Context, root Workflow) error {
	ctx.CurrentWorkflow = root.Name()
	ctx.Logger.Info("running workflow", "workflow", root.Name())

	err := root.Run(ctx)

	ctx.CurrentWorkflow = ""
	ctx.cleanup.drain(ctx, err)
	return err
}

// Execute is the top-level entry: it configures logging from the root
// workflow's level, resolves the workspace directory (from a
// recognized CI platform, or the --workspace flag outside CI), changes
// into it, runs the root workflow, and unwinds. It returns the
// process exit code: 0 on success, 1 on any failure.
func Execute(root Workflow, args []string) int {
	ctx, err := setup(root, args)
	if err != nil {
		slog.Error("workflow setup failed", "workflow", root.Name(), "error", err)
		return exitFailure
	}

	if err := Run(ctx, root); err != nil {
		ctx.Logger.Error("workflow failed", "workflow", root.Name(), "error", err)
		return exitFailure
	}

	ctx.Logger.Info("workflow succeeded", "workflow", root.Name())
	return exitOK
}

// Main runs the root workflow with the process arguments and exits.
func Main(root Workflow) {
	os.Exit(Execute(root, os.Args[1:]))
}

func setup(root Workflow, args []string) (*Context, error) {
	flags := pflag.NewFlagSet("conveyor", pflag.ContinueOnError)
	workspace := flags.String("workspace", "", "workspace directory (required outside CI)")
	loggingType := flags.String("logging-type", logging.Tint, "logging type: json, text or tint")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before the run")

	if err := flags.Parse(args); err != nil {
		return nil, &InternalError{Op: "parsing arguments", Err: err}
	}

	logger, err := logging.Initialize(*loggingType, root.LogLevel())
	if err != nil {
		return nil, &InternalError{Op: "initializing logging", Err: err}
	}

	loadDotenv(logger, *envFile)

	dir, err := resolveWorkspace(logger, *workspace)
	if err != nil {
		return nil, &InternalError{Op: "resolving workspace", Err: err}
	}

	ctx, err := NewContext()
	if err != nil {
		return nil, &InternalError{Op: "creating context", Err: err}
	}
	ctx.Logger = logger

	if err := ctx.Chdir(dir); err != nil {
		return nil, &InternalError{Op: "entering workspace", Err: err}
	}

	logger.Info("workspace resolved", "dir", dir)
	return ctx, nil
}

func loadDotenv(logger *slog.Logger, envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no dotenv file found", "file", envFile)
		} else {
			logger.Warn("failed to load dotenv file", "file", envFile, "error", err)
		}
		return
	}
	logger.Info("loaded dotenv file", "file", envFile)
}

func resolveWorkspace(logger *slog.Logger, flagValue string) (string, error) {
	if p, ok := platform.Detect(); ok {
		logger.Info("detected CI platform", "platform", p.Name())
		dir, err := p.Workspace()
		if err != nil {
			return "", fmt.Errorf("reading %s workspace: %w", p.Name(), err)
		}
		return dir, nil
	}

	if flagValue == "" {
		return "", fmt.Errorf("--workspace is required outside CI")
	}
	return flagValue, nil
}
