package task

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/registry"
)

// Runner is a constructed command ready to run. The value returned by Run
// is handed back to the caller of the dispatcher unchanged.
type Runner interface {
	Run() (interface{}, error)
}

// Constructor builds a command from its argument vector
type Constructor func(env *Env, args []string) Runner

// Entry is a registered command
type Entry struct {
	Name        string
	New         Constructor
	Description string
	Help        string
}

// Definition is one row of a static command table. Name may be left empty
// when Variant is set; it is then derived with CommandName.
type Definition struct {
	Variant     interface{}
	Name        string
	New         Constructor
	Description string
	Help        string
}

// Registry maps command names to entries
type Registry struct {
	entries registry.Registry[*Entry]
}

// NewRegistry returns an empty command registry
func NewRegistry() *Registry {
	return &Registry{entries: registry.New[*Entry]()}
}

// CommandName derives a command name from the type of v: the type name
// without package qualifier, lower-cased. *tasks.Link becomes "link".
func CommandName(v interface{}) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// Register adds a command with empty description and help
func (r *Registry) Register(name string, ctor Constructor) error {
	if ctor == nil {
		return errors.Newf(errors.ErrInvalidInput, "command %q has no constructor", name).
			WithDetail("name", name)
	}
	return r.entries.Register(name, &Entry{Name: name, New: ctor})
}

// Describe sets the one line description shown in the command summary
func (r *Registry) Describe(name, text string) error {
	entry, err := r.entries.Get(name)
	if err != nil {
		return err
	}
	entry.Description = text
	return nil
}

// SetHelp sets the text shown above the command's usage line
func (r *Registry) SetHelp(name, text string) error {
	entry, err := r.entries.Get(name)
	if err != nil {
		return err
	}
	entry.Help = text
	return nil
}

// Install registers every definition in order. Names are checked first:
// a name repeated in defs or already registered fails the whole install
// with ALREADY_EXISTS and leaves the registry unchanged.
func (r *Registry) Install(defs ...Definition) error {
	names := make([]string, len(defs))
	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		name := def.Name
		if name == "" {
			name = CommandName(def.Variant)
		}
		if seen[name] || r.entries.Has(name) {
			return errors.Newf(errors.ErrAlreadyExists, "command %q is already registered", name).
				WithDetail("name", name)
		}
		seen[name] = true
		names[i] = name
	}

	for i, def := range defs {
		if err := r.Register(names[i], def.New); err != nil {
			return err
		}
		if err := r.Describe(names[i], def.Description); err != nil {
			return err
		}
		if err := r.SetHelp(names[i], def.Help); err != nil {
			return err
		}
	}
	return nil
}

// MustInstall is Install for program startup; it panics on failure
func (r *Registry) MustInstall(defs ...Definition) {
	if err := r.Install(defs...); err != nil {
		panic(fmt.Sprintf("failed to install commands: %v", err))
	}
}

// Lookup returns the entry registered under name
func (r *Registry) Lookup(name string) (*Entry, bool) {
	return r.entries.Lookup(name)
}

// Entries returns every entry ordered by name
func (r *Registry) Entries() []*Entry {
	return r.entries.Values()
}

// Summary renders one line per command, ordered by name
func (r *Registry) Summary() string {
	lines := make([]string, 0, r.entries.Count())
	for _, entry := range r.Entries() {
		lines = append(lines, fmt.Sprintf("    %-8s%s", entry.Name, entry.Description))
	}
	return strings.Join(lines, "\n")
}
