package task

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/haus/pkg/config"
	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/paths"
	"github.com/arthur-debert/haus/pkg/users"
)

// Program is the name commands are invoked through
const Program = "haus"

// Env is what commands share with the dispatcher that runs them
type Env struct {
	Registry *Registry
	FS       filesystem.FS
	Resolver *users.Resolver
	Settings *config.Settings
	Context  context.Context

	// Out receives help and command output, Err diagnostics
	Out io.Writer
	Err io.Writer
}

// NewEnv returns an Env on the real filesystem and account database
func NewEnv(reg *Registry, settings *config.Settings) *Env {
	fs := filesystem.NewOS()
	return &Env{
		Registry: reg,
		FS:       fs,
		Resolver: users.NewResolver(fs),
		Settings: settings,
		Context:  context.Background(),
		Out:      os.Stdout,
		Err:      os.Stderr,
	}
}

// DefaultPath is the installation root used when -p/--path is not given
func (e *Env) DefaultPath() string {
	override := ""
	if e.Settings != nil {
		override = e.Settings.Path
	}
	return paths.DefaultPath(override)
}

func (e *Env) context() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}
