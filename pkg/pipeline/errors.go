package pipeline

import "fmt"

// InternalError marks an engine-detected fatal condition, such as a
// failure to enter the workspace directory. It is distinct from
// failures raised by steps or workflows and is never retried.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
