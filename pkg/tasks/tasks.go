// Package tasks implements the haus commands and the table that installs
// them into a registry.
package tasks

import (
	"strings"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/queue"
	"github.com/arthur-debert/haus/pkg/task"
)

// Definitions is every haus command
var Definitions = []task.Definition{
	{
		Variant:     &Link{},
		New:         func(env *task.Env, args []string) task.Runner { return NewLink(env, args) },
		Description: "Link etc files into home directories",
		Help:        "Create dotfile symlinks in each user's home directory pointing to the\nfiles in HAUS_PATH/etc.",
	},
	{
		Variant:     &Unlink{},
		New:         func(env *task.Env, args []string) task.Runner { return NewUnlink(env, args) },
		Description: "Remove links to etc files",
		Help:        "Remove dotfile symlinks that point into HAUS_PATH/etc. Files and links\nhaus did not create are left alone.",
	},
	{
		Variant:     &Copy{},
		New:         func(env *task.Env, args []string) task.Runner { return NewCopy(env, args) },
		Description: "Copy etc files into home directories",
		Help:        "Copy the files in HAUS_PATH/etc into each user's home directory as\ndotfiles. When run as root, copies are owned by the target user.",
	},
	{
		Variant:     &List{},
		New:         func(env *task.Env, args []string) task.Runner { return NewList(env, args) },
		Description: "Show the state of every dotfile",
		Help:        "List each file in HAUS_PATH/etc with its dotfile in every user's home\ndirectory and whether it is linked, copied, modified or missing.",
	},
	{
		Variant:     &Completion{},
		New:         func(env *task.Env, args []string) task.Runner { return NewCompletion(env, args) },
		Description: "Print a shell completion script",
		Help:        "Print the completion script for SHELL (bash, zsh, fish or powershell).\n\n  haus completion bash > /etc/bash_completion.d/haus",
	},
	{
		Variant:     &Man{},
		New:         func(env *task.Env, args []string) task.Runner { return NewMan(env, args) },
		Description: "Generate man pages",
		Help:        "Print the haus man page, or write one page per command into DIR\nwith --output.",
	},
}

// Install registers every command in reg
func Install(reg *task.Registry) error {
	return reg.Install(Definitions...)
}

// noArgs rejects leftover positional arguments
func noArgs(name string, rest []string) error {
	if len(rest) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrInvalidInput, "%s: unexpected arguments: %s", name, strings.Join(rest, " ")).
		WithDetail("args", rest)
}

// succeeded is false when any operation was skipped
func succeeded(results []queue.Result) bool {
	for _, r := range results {
		if r.Status == queue.StatusSkipped {
			return false
		}
	}
	return true
}
