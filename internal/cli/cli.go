// Package cli is the haus command dispatcher.
//
// Global options are parsed in order up to the first argument that is not
// a flag, which names the command. Everything after it belongs to the
// command, so "haus --help link" shows the dispatcher's help while
// "haus link --help" shows link's. The flags every command shares may also
// be given before the command name; they are passed on to the command ahead
// of its own arguments.
package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/haus/internal/version"
	"github.com/arthur-debert/haus/pkg/cobrax"
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/logging"
	"github.com/arthur-debert/haus/pkg/options"
	"github.com/arthur-debert/haus/pkg/output/styles"
	"github.com/arthur-debert/haus/pkg/task"
)

// Exit codes returned by Execute
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitNoCommand = 2
)

// Haus dispatches one invocation to a registered command
type Haus struct {
	Args []string
	Env  *task.Env

	options   *options.Options
	forward   []string
	verbosity int
}

// New returns a dispatcher for args, the command line without the program
// name
func New(args []string, env *task.Env) *Haus {
	return &Haus{Args: args, Env: env}
}

// Verbosity returns the log verbosity after Run: the configured base plus
// one per -v
func (h *Haus) Verbosity() int {
	return h.verbosity
}

// Forwarded returns the shared command flags given before the command name,
// in the form they are passed to the command
func (h *Haus) Forwarded() []string {
	return append([]string(nil), h.forward...)
}

// Options returns the global option parser, building it on first use
func (h *Haus) Options() *options.Options {
	if h.options != nil {
		return h.options
	}

	o := options.New(task.Program)
	o.InOrder = true
	o.Out = h.Env.Out
	o.Banner = h.banner()

	o.On("v", "verbose", "", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)", func(string) error {
		h.verbosity++
		return nil
	})
	o.On("p", "path", "PATH", "Override the location of HAUS_PATH for the command", func(raw string) error {
		h.forward = append(h.forward, "--path="+raw)
		return nil
	})
	o.On("u", "users", "a,b,c", "Usernames or UIDs for the command", func(raw string) error {
		h.forward = append(h.forward, "--users="+raw)
		return nil
	})
	for _, flag := range []struct{ short, long, usage string }{
		{"f", "force", "Overwrite existing files"},
		{"n", "noop", "Show what would be done without doing it"},
		{"q", "quiet", "Suppress all logging output"},
	} {
		arg := "--" + flag.long
		o.OnTail(flag.short, flag.long, "", flag.usage, func(string) error {
			h.forward = append(h.forward, arg)
			return nil
		})
	}
	o.OnTail("", "version", "", "Print the version and exit", func(string) error {
		fmt.Fprintln(h.Env.Out, version.String())
		return errors.New(errors.ErrVersion, MsgVersion)
	})

	h.options = o
	return o
}

func (h *Haus) banner() string {
	var b strings.Builder
	b.WriteString(MsgUsage + "\n\n")
	if h.Env.Registry != nil {
		b.WriteString(MsgCommands + "\n")
		b.WriteString(h.Env.Registry.Summary())
		b.WriteString("\n\n")
	}
	b.WriteString(MsgMore + "\n\n")
	b.WriteString(MsgOptions)
	return b.String()
}

// Help returns the dispatcher's usage text
func (h *Haus) Help() string {
	return h.Options().Help()
}

// Run parses the global options and runs the named command, returning
// its result unchanged. Without a known command the help text is written
// to Env.Err and a COMMAND_NOT_FOUND error is returned.
func (h *Haus) Run() (interface{}, error) {
	o := h.Options()

	h.forward = nil
	h.verbosity = 0
	if h.Env.Settings != nil {
		h.verbosity = h.Env.Settings.Verbosity
	}

	rest, err := o.Parse(h.Args)
	if err != nil {
		return nil, err
	}
	h.setup()

	if len(rest) == 0 {
		return nil, h.noCommand(errors.New(errors.ErrCommandNotFound, MsgNoCommand))
	}

	name := rest[0]
	if cobrax.IsCompletionRequest(name) {
		if err := cobrax.Complete(h.Env, rest); err != nil {
			return nil, err
		}
		return true, nil
	}

	var entry *task.Entry
	ok := false
	if h.Env.Registry != nil {
		entry, ok = h.Env.Registry.Lookup(name)
	}
	if !ok {
		return nil, h.noCommand(errors.Newf(errors.ErrCommandNotFound, MsgUnknownCommand, name).
			WithDetail("command", name))
	}

	args := append(h.Forwarded(), rest[1:]...)
	logging.LogCommand(name, args)

	return entry.New(h.Env, args).Run()
}

func (h *Haus) setup() {
	logFile := h.Env.Settings != nil && h.Env.Settings.LogFile
	logging.SetupLogger(logging.Options{
		Verbosity: h.Verbosity(),
		File:      logFile,
		Out:       h.Env.Err,
	})
	styles.Configure(h.Env.Out)
}

func (h *Haus) noCommand(err error) error {
	fmt.Fprintln(h.Env.Err, h.Help())
	return err
}

// Execute runs the dispatcher and maps the outcome to an exit code. Errors
// other than help, version and a missing command are printed to Env.Err.
func Execute(args []string, env *task.Env) int {
	result, err := New(args, env).Run()

	switch {
	case err == nil:
		if ok, isBool := result.(bool); isBool && !ok {
			return ExitFailure
		}
		return ExitOK
	case errors.IsErrorCode(err, errors.ErrHelp), errors.IsErrorCode(err, errors.ErrVersion):
		return ExitOK
	case errors.IsErrorCode(err, errors.ErrCommandNotFound):
		return ExitNoCommand
	default:
		logger := logging.GetLogger("cli")
		logger.Debug().
			Str("code", string(errors.GetErrorCode(err))).
			Fields(errors.GetErrorDetails(err)).
			Err(err).
			Msg("Command failed")
		fmt.Fprintf(env.Err, "%s: %s\n", task.Program, errors.UserMessage(err))
		return ExitFailure
	}
}
