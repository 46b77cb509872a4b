package pipeline

// Step is a unit of work with a typed output. A step's Run may itself
// invoke nested steps and workflows through RunStep and RunWorkflow.
type Step[Output any] interface {
	Name() string
	Run(ctx *Context) (Output, error)
}

// Cleaner is implemented by steps that need teardown. Cleanup receives
// the terminal error of the overall run, nil when the run succeeded.
// It is invoked during unwind, after the whole tree has finished, in
// reverse registration order.
type Cleaner interface {
	Cleanup(ctx *Context, runErr error) error
}

// RunStep executes a step: it registers the step's cleanup (if any) on
// the cleanup stack, marks it current, logs it, and runs it. The
// step's result or failure propagates to the caller unchanged; cleanup
// is deferred to the unwind phase so teardown ordering is global
// across the whole tree.
func RunStep[O any](ctx *Context, s Step[O]) (O, error) {
	return RunStepNamed(ctx, s.Name(), s)
}

// RunStepNamed is RunStep with a display-name override.
func RunStepNamed[O any](ctx *Context, name string, s Step[O]) (O, error) {
	if c, ok := any(s).(Cleaner); ok {
		ctx.cleanup.push(name, c.Cleanup)
	}

	ctx.CurrentStep = name
	defer func() { ctx.CurrentStep = "" }()

	ctx.Logger.Info("running step", "step", name)
	return s.Run(ctx)
}

// StepFunc adapts a function to the Step interface.
type StepFunc[O any] struct {
	StepName string
	Func     func(ctx *Context) (O, error)
}

func (f StepFunc[O]) Name() string { return f.StepName }

func (f StepFunc[O]) Run(ctx *Context) (O, error) { return f.Func(ctx) }
