// Package task holds the command registry and the base every haus command
// is built on.
//
// A Registry maps command names to constructors plus the description and
// help text shown by the dispatcher. Commands are installed once at startup
// from a static table of Definitions; a duplicate name is a startup error.
//
// Task is embedded by concrete commands. It owns the command's option
// parser, built lazily on first use with the flags every command shares
// (-p/--path, -u/--users, -f/--force, -n/--noop, -q/--quiet). Commands add
// their own flags with Flags and call Task.Run first in their own Run to
// parse the arguments they were constructed with:
//
//	type Link struct{ *task.Task }
//
//	func (l *Link) Run() (interface{}, error) {
//	    if _, err := l.Task.Run(); err != nil {
//	        return nil, err
//	    }
//	    ...
//	}
package task
