package tasks

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/options"
	"github.com/arthur-debert/haus/pkg/output"
	"github.com/arthur-debert/haus/pkg/output/styles"
	"github.com/arthur-debert/haus/pkg/task"
)

// KeyFormat is the option holding the list output format
const KeyFormat = "format"

// States reported by list
const (
	StateLinked   = "linked"
	StateCopied   = "copied"
	StateModified = "modified"
	StateForeign  = "foreign"
	StateMissing  = "missing"
)

// Entry is the state of one dotfile
type Entry struct {
	User   string `json:"user" yaml:"user" toml:"user"`
	Source string `json:"source" yaml:"source" toml:"source"`
	Target string `json:"target" yaml:"target" toml:"target"`
	State  string `json:"state" yaml:"state" toml:"state"`
}

// Report is what list returns and prints
type Report struct {
	Path    string  `json:"path" yaml:"path" toml:"path"`
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`
}

// List reports the state of every dotfile
type List struct{ *task.Task }

// NewList returns the list command for args
func NewList(env *task.Env, args []string) *List {
	l := &List{task.New(env, "list", args)}
	l.Flags(func(o *options.Options) {
		_ = o.Set(KeyFormat, output.FormatText)
		o.Hook(KeyFormat, func(raw interface{}) (interface{}, error) {
			s, _ := raw.(string)
			return output.ParseFormat(s)
		})
		o.On("F", "format", "FORMAT", "Output format: text, json, yaml or toml", func(raw string) error {
			return o.ValidateAndSet(KeyFormat, raw)
		})
	})
	return l
}

// Format returns the selected output format
func (l *List) Format() output.Format {
	format, _ := l.Options().Get(KeyFormat).(output.Format)
	return format
}

// Run prints the report and returns it
func (l *List) Run() (interface{}, error) {
	rest, err := l.Task.Run()
	if err != nil {
		return nil, err
	}
	if err := noArgs(l.Name, rest); err != nil {
		return nil, err
	}

	report, err := l.Report()
	if err != nil {
		return nil, err
	}

	if l.Format() == output.FormatText {
		l.render(l.Env.Out, report)
		return report, nil
	}
	if err := output.Encode(l.Env.Out, l.Format(), report); err != nil {
		return nil, err
	}
	return report, nil
}

// Report inspects every dotfile of every target user
func (l *List) Report() (*Report, error) {
	files, err := l.Etcfiles()
	if err != nil {
		return nil, err
	}

	report := &Report{Path: l.Options().Path(), Entries: []Entry{}}
	for _, u := range l.Users() {
		for _, src := range files {
			dot := l.Dotfile(u, src)
			report.Entries = append(report.Entries, Entry{
				User:   u.Name,
				Source: src,
				Target: dot,
				State:  l.state(src, dot),
			})
		}
	}
	return report, nil
}

func (l *List) state(src, dot string) string {
	fs := l.Env.FS

	if _, err := fs.Lstat(dot); err != nil {
		return StateMissing
	}
	if filesystem.IsSymlink(fs, dot) {
		target, err := fs.Readlink(dot)
		if err != nil {
			return StateForeign
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(dot), target)
		}
		if filepath.Clean(target) == filepath.Clean(src) {
			return StateLinked
		}
		return StateForeign
	}

	want, err := fs.ReadFile(src)
	if err != nil {
		return StateModified
	}
	have, err := fs.ReadFile(dot)
	if err != nil || !bytes.Equal(want, have) {
		return StateModified
	}
	return StateCopied
}

func (l *List) render(w io.Writer, report *Report) {
	user := ""
	for _, e := range report.Entries {
		if e.User != user {
			user = e.User
			fmt.Fprintln(w, styles.Render("heading", user))
		}
		fmt.Fprintf(w, "  %s%s %s\n",
			styles.Render(stateStyle(e.State), fmt.Sprintf("%-9s", e.State)),
			e.Target,
			styles.Render("path", "<- "+e.Source))
	}
}

func stateStyle(state string) string {
	switch state {
	case StateLinked:
		return "link"
	case StateCopied:
		return "copy"
	case StateMissing:
		return "skip"
	default:
		return "error"
	}
}
