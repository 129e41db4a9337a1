package task

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/logging"
	"github.com/arthur-debert/haus/pkg/options"
	"github.com/arthur-debert/haus/pkg/paths"
	"github.com/arthur-debert/haus/pkg/queue"
	"github.com/arthur-debert/haus/pkg/users"
)

// Task is the base of every command
type Task struct {
	Name  string
	Args  []string
	Env   *Env
	Queue *queue.Queue

	options  *options.Options
	extend   []func(*options.Options)
	usersErr error
}

// New returns a task that will parse args when run
func New(env *Env, name string, args []string) *Task {
	return &Task{
		Name:  name,
		Args:  args,
		Env:   env,
		Queue: queue.New(),
	}
}

// Flags adds command specific flags. Functions are applied when the option
// parser is built, or immediately if it already was.
func (t *Task) Flags(fn func(*options.Options)) {
	if t.options != nil {
		t.options.Tap(fn)
		return
	}
	t.extend = append(t.extend, fn)
}

// Options returns the command's option parser, building it on first use
func (t *Task) Options() *options.Options {
	if t.options != nil {
		return t.options
	}

	o := options.New(t.Name)
	o.Out = t.Env.Out
	o.DefaultPath = t.Env.DefaultPath
	o.Banner = t.banner()
	o.Hook(options.KeyUsers, t.resolveUsers)

	// The current user is the default target; when it cannot be resolved
	// the failure is reported by Run unless -u replaces it.
	t.usersErr = o.ValidateAndSet(options.KeyUsers, []interface{}{os.Geteuid()})

	o.On("p", "path", "PATH", fmt.Sprintf("Override the location of %s. Currently: %s", paths.EnvHausPath, o.Path()), func(raw string) error {
		return o.ValidateAndSet(options.KeyPath, raw)
	})
	o.On("u", "users", "a,b,c", "Usernames or UIDs (default: current user)", func(raw string) error {
		return o.ValidateAndSet(options.KeyUsers, raw)
	})
	o.OnTail("f", "force", "", "Overwrite existing files", func(string) error {
		return o.Set(options.KeyForce, true)
	})
	o.OnTail("n", "noop", "", "Show what would be done without doing it", func(string) error {
		return o.Set(options.KeyNoop, true)
	})
	o.OnTail("q", "quiet", "", "Suppress all logging output", func(string) error {
		return o.Set(options.KeyQuiet, true)
	})

	for _, fn := range t.extend {
		o.Tap(fn)
	}
	t.extend = nil

	t.options = o
	return o
}

func (t *Task) banner() string {
	var b strings.Builder
	if t.Env.Registry != nil {
		if entry, ok := t.Env.Registry.Lookup(t.Name); ok && entry.Help != "" {
			b.WriteString(strings.TrimRight(entry.Help, "\n"))
			b.WriteString("\n\n")
		}
	}
	fmt.Fprintf(&b, "Usage: %s %s [options]\n\nOptions:", Program, t.Name)
	return b.String()
}

// resolveUsers accepts a comma separated list, a list of ids or a list of
// users and returns the resolved []users.User
func (t *Task) resolveUsers(raw interface{}) (interface{}, error) {
	var ids []interface{}
	switch v := raw.(type) {
	case string:
		for _, token := range strings.Split(v, ",") {
			if strings.TrimSpace(token) != "" {
				ids = append(ids, users.ParseID(token))
			}
		}
	case []interface{}:
		ids = v
	case []users.User:
		for _, u := range v {
			ids = append(ids, u)
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot read users from %T", raw)
	}

	if len(ids) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no users given")
	}
	return t.Env.Resolver.ResolveAll(ids)
}

// Run parses the task's arguments and returns the ones that are not flags
func (t *Task) Run() ([]string, error) {
	o := t.Options()

	logger := logging.GetLogger("task").With().Str("task", t.Name).Logger()
	logger.Debug().Strs("args", t.Args).Msg("Parsing task arguments")

	rest, err := o.Parse(t.Args)
	if err != nil {
		return nil, err
	}
	if len(o.Users) == 0 && t.usersErr != nil {
		return nil, t.usersErr
	}

	if o.Quiet {
		logging.SetupLogger(logging.Options{Quiet: true, Out: t.Env.Err})
	}

	logger.Debug().
		Str("path", o.Path()).
		Str("users", users.Describe(o.Users)).
		Bool("force", o.Force).
		Bool("noop", o.Noop).
		Msg("Task configured")
	return rest, nil
}

// Users returns the target users
func (t *Task) Users() []users.User {
	return t.Options().Users
}

// Log writes one line of progress output unless quiet was requested
func (t *Task) Log(format string, args ...interface{}) {
	if t.Options().Quiet {
		return
	}
	fmt.Fprintf(t.Env.Out, format+"\n", args...)
}

// Etc returns the directory holding the managed files
func (t *Task) Etc() string {
	return paths.Etc(t.Options().Path())
}

// Etcfiles returns the absolute paths of the entries directly inside Etc,
// sorted by name. Hidden entries are ignored.
func (t *Task) Etcfiles() ([]string, error) {
	dir, err := filepath.Abs(t.Etc())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", t.Etc())
	}
	entries, err := t.Env.FS.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", dir).
			WithDetail("dir", dir)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Dotfile returns where src is installed for u: ~/.<basename>
func (t *Task) Dotfile(u users.User, src string) string {
	return filepath.Join(u.Home, "."+filepath.Base(src))
}

// ExecuteOptions returns queue options reflecting the parsed flags
func (t *Task) ExecuteOptions() queue.ExecuteOptions {
	o := t.Options()
	return queue.ExecuteOptions{
		FS:    t.Env.FS,
		Force: o.Force,
		Noop:  o.Noop,
		Log:   t.Log,
	}
}

// Execute applies the queued operations
func (t *Task) Execute(opts queue.ExecuteOptions) ([]queue.Result, error) {
	done := logging.LogOperationStart(logging.GetLogger("task"), t.Name)
	defer done()
	return t.Queue.Execute(t.Env.context(), opts)
}
