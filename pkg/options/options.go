package options

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/arthur-debert/haus/pkg/errors"
)

// Handler receives the raw flag argument ("true" for switches)
type Handler func(raw string) error

// Hook validates and transforms a raw value before it is stored. It must
// return an error instead of a partially valid value.
type Hook func(raw interface{}) (interface{}, error)

// Options is a flag parser bound to the Values it fills in
type Options struct {
	Values

	// Banner heads the help text
	Banner string
	// DefaultPath computes Path() when no override was set
	DefaultPath func() string
	// InOrder stops parsing at the first non-flag argument instead of
	// collecting flags from anywhere in the argument vector
	InOrder bool
	// Out receives help output
	Out io.Writer

	name       string
	flags      *pflag.FlagSet
	tail       []flagDef
	hooks      map[string]Hook
	handlerErr error
	finalized  bool
}

type flagDef struct {
	short, long, arg, usage string
	handler                 Handler
}

// New returns an empty parser; name is used in error messages
func New(name string) *Options {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false

	return &Options{
		Values: Values{Extra: make(map[string]interface{})},
		Out:    os.Stdout,
		name:   name,
		flags:  flags,
		hooks:  make(map[string]Hook),
	}
}

// Name returns the name given to New
func (o *Options) Name() string {
	return o.name
}

// Tap calls fn with o and returns o, for extending a parser in place
func (o *Options) Tap(fn func(*Options)) *Options {
	fn(o)
	return o
}

// Path returns the installation root: the explicit override when one was
// set, the DefaultPath value otherwise
func (o *Options) Path() string {
	if o.Values.Path != "" {
		return o.Values.Path
	}
	if o.DefaultPath != nil {
		return o.DefaultPath()
	}
	return ""
}

// Get returns the value stored under key; unknown keys read as nil
func (o *Options) Get(key string) interface{} {
	if key == KeyPath {
		return o.Path()
	}
	return o.Values.get(key)
}

// Set stores value under key without running hooks. Known keys only accept
// their declared type.
func (o *Options) Set(key string, value interface{}) error {
	return o.Values.set(key, value)
}

// Hook installs the validation hook for key, replacing any previous one
func (o *Options) Hook(key string, hook Hook) {
	o.hooks[key] = hook
}

// ValidateAndSet runs the hook for key, if any, then stores the result
func (o *Options) ValidateAndSet(key string, raw interface{}) error {
	value := raw
	if hook, ok := o.hooks[key]; ok {
		v, err := hook(raw)
		if err != nil {
			return err
		}
		value = v
	}
	return o.Set(key, value)
}

// On defines a flag. short may be empty. An empty arg declares a switch
// that takes no argument; otherwise arg names the argument in help output.
func (o *Options) On(short, long, arg, usage string, handler Handler) {
	o.define(flagDef{short: short, long: long, arg: arg, usage: usage, handler: handler})
}

// OnTail defines a flag listed after every flag defined with On
func (o *Options) OnTail(short, long, arg, usage string, handler Handler) {
	o.tail = append(o.tail, flagDef{short: short, long: long, arg: arg, usage: usage, handler: handler})
}

func (o *Options) define(def flagDef) {
	value := &handlerValue{options: o, arg: def.arg, handler: def.handler}
	flag := o.flags.VarPF(value,
		strings.TrimLeft(def.long, "-"),
		strings.TrimLeft(def.short, "-"),
		def.usage)
	if def.arg == "" {
		flag.NoOptDefVal = "true"
	}
}

// finalize adds the tail flags and -h/--help exactly once
func (o *Options) finalize() {
	if o.finalized {
		return
	}
	o.finalized = true

	for _, def := range o.tail {
		o.define(def)
	}
	o.tail = nil

	if o.flags.Lookup("help") == nil {
		o.define(flagDef{long: "help", short: o.helpShorthand(), usage: "Show this message", handler: func(string) error {
			_, _ = io.WriteString(o.Out, o.Help()+"\n")
			return errors.Newf(errors.ErrHelp, "%s: help requested", o.name)
		}})
	}
}

func (o *Options) helpShorthand() string {
	if o.flags.ShorthandLookup("h") != nil {
		return ""
	}
	return "h"
}

// Parse processes args in order, running each flag's handler as the flag
// is encountered, and returns the arguments that are not flags. On failure
// every value is restored to its state before Parse.
func (o *Options) Parse(args []string) ([]string, error) {
	o.finalize()

	saved := o.Values.clone()
	o.handlerErr = nil
	o.flags.SetInterspersed(!o.InOrder)

	if err := o.flags.Parse(args); err != nil {
		o.Values = saved
		if o.handlerErr != nil {
			return nil, o.handlerErr
		}
		return nil, errors.Wrap(err, errors.ErrFlagParse, o.name)
	}

	return o.flags.Args(), nil
}

// FlagSet returns the underlying flag set with every flag defined, for
// generating completions and documentation
func (o *Options) FlagSet() *pflag.FlagSet {
	o.finalize()
	return o.flags
}

// Help returns the banner followed by the flag summary
func (o *Options) Help() string {
	o.finalize()

	var b strings.Builder
	b.WriteString(o.Banner)
	if o.Banner != "" && !strings.HasSuffix(o.Banner, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(o.flags.FlagUsages())
	return strings.TrimRight(b.String(), "\n")
}

// handlerValue adapts a Handler to pflag.Value. The first handler error is
// kept on the Options so Parse can return it unwrapped.
type handlerValue struct {
	options *Options
	arg     string
	handler Handler
}

func (v *handlerValue) String() string {
	return ""
}

func (v *handlerValue) Set(raw string) error {
	if err := v.handler(raw); err != nil {
		if v.options.handlerErr == nil {
			v.options.handlerErr = err
		}
		return err
	}
	return nil
}

func (v *handlerValue) Type() string {
	if v.arg == "" {
		return "bool"
	}
	return v.arg
}
