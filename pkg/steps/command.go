package steps

import (
	"strings"

	"github.com/systemstart/conveyor/pkg/pipeline"
)

// Command runs an external program in the current working directory.
// Its output is the trimmed stdout of the program.
type Command struct {
	Program string
	Args    []string
}

func (s *Command) Name() string { return s.Program }

func (s *Command) Run(ctx *pipeline.Context) (string, error) {
	out, err := ctx.Exec(s.Program, s.Args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
