package tasks

import (
	"github.com/arthur-debert/haus/pkg/cobrax"
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/options"
	"github.com/arthur-debert/haus/pkg/task"
)

// KeyOutput is the option holding the man page directory
const KeyOutput = "output"

// Man generates man pages
type Man struct{ *task.Task }

// NewMan returns the man command for args
func NewMan(env *task.Env, args []string) *Man {
	m := &Man{task.New(env, "man", args)}
	m.Flags(func(o *options.Options) {
		o.On("o", "output", "DIR", "Write one page per command into DIR", func(raw string) error {
			return o.ValidateAndSet(KeyOutput, raw)
		})
	})
	return m
}

// Run prints the top level page, or writes every page when --output is
// given and returns the written paths
func (m *Man) Run() (interface{}, error) {
	rest, err := m.Task.Run()
	if err != nil {
		return nil, err
	}
	if err := noArgs(m.Name, rest); err != nil {
		return nil, err
	}

	root := cobrax.Tree(m.Env)
	dir, _ := m.Options().Get(KeyOutput).(string)
	if dir == "" {
		if err := cobrax.ManPage(root, m.Env.Out); err != nil {
			return nil, err
		}
		return true, nil
	}

	if m.Options().Noop {
		m.Log("would write man pages to %s", dir)
		return true, nil
	}
	if err := m.Env.FS.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
	}
	pages, err := cobrax.ManTree(root, m.Env.FS, dir)
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		m.Log("%s", page)
	}
	return pages, nil
}
