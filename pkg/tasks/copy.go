package tasks

import (
	"os"

	"github.com/arthur-debert/haus/pkg/task"
)

// Copy installs etc files as regular files
type Copy struct{ *task.Task }

// NewCopy returns the copy command for args
func NewCopy(env *task.Env, args []string) *Copy {
	return &Copy{task.New(env, "copy", args)}
}

// Run returns true when every dotfile holds a copy of its etc file
func (c *Copy) Run() (interface{}, error) {
	rest, err := c.Task.Run()
	if err != nil {
		return nil, err
	}
	if err := noArgs(c.Name, rest); err != nil {
		return nil, err
	}

	files, err := c.Etcfiles()
	if err != nil {
		return nil, err
	}
	for _, u := range c.Users() {
		for _, src := range files {
			c.Queue.AddCopy(u, src, c.Dotfile(u, src))
		}
	}

	opts := c.ExecuteOptions()
	opts.Chown = os.Geteuid() == 0
	results, err := c.Execute(opts)
	if err != nil {
		return nil, err
	}
	return succeeded(results), nil
}
