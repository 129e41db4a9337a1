package tasks

import (
	"github.com/arthur-debert/haus/pkg/task"
)

// Link symlinks every etc file into the target home directories
type Link struct{ *task.Task }

// NewLink returns the link command for args
func NewLink(env *task.Env, args []string) *Link {
	return &Link{task.New(env, "link", args)}
}

// Run returns true when every dotfile is linked
func (l *Link) Run() (interface{}, error) {
	rest, err := l.Task.Run()
	if err != nil {
		return nil, err
	}
	if err := noArgs(l.Name, rest); err != nil {
		return nil, err
	}

	files, err := l.Etcfiles()
	if err != nil {
		return nil, err
	}
	for _, u := range l.Users() {
		for _, src := range files {
			l.Queue.AddLink(u, src, l.Dotfile(u, src))
		}
	}

	results, err := l.Execute(l.ExecuteOptions())
	if err != nil {
		return nil, err
	}
	return succeeded(results), nil
}
