package tasks

import (
	"github.com/arthur-debert/haus/pkg/cobrax"
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/task"
)

// Completion prints a shell completion script
type Completion struct{ *task.Task }

// NewCompletion returns the completion command for args
func NewCompletion(env *task.Env, args []string) *Completion {
	return &Completion{task.New(env, "completion", args)}
}

// Run writes the script for the shell named by the single argument
func (c *Completion) Run() (interface{}, error) {
	rest, err := c.Task.Run()
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, errors.Newf(errors.ErrInvalidInput, "completion: expected one shell name, got %d arguments", len(rest))
	}

	if err := cobrax.Completion(cobrax.Tree(c.Env), rest[0], c.Env.Out); err != nil {
		return nil, err
	}
	return true, nil
}
