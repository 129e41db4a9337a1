package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/output/styles"
	"github.com/arthur-debert/haus/pkg/users"
)

// Environment is an isolated haus installation on the real filesystem:
// a root with an etc/ directory and one home directory per account, all
// below t.TempDir().
type Environment struct {
	// Root is the haus installation root; managed files live in Root/etc
	Root string
	// HomeBase holds the account home directories
	HomeBase string

	FS       filesystem.FS
	Resolver *users.Resolver
	Accounts []Account

	Out *bytes.Buffer
	Err *bytes.Buffer
}

// NewEnvironment creates the root and the home directories of the given
// accounts. Account homes are relative to HomeBase; an empty Home defaults
// to the account name. The current effective uid is always resolvable as
// the account "self" unless the table already contains that uid.
func NewEnvironment(t *testing.T, accounts ...Account) *Environment {
	t.Helper()

	base := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}

	env := &Environment{
		Root:     CreateDir(t, base, "haus"),
		HomeBase: CreateDir(t, base, "home"),
		FS:       filesystem.NewOS(),
		Out:      &bytes.Buffer{},
		Err:      &bytes.Buffer{},
	}
	CreateDir(t, env.Root, "etc")
	styles.Configure(env.Out)

	hasSelf := false
	for _, a := range accounts {
		if a.UID == os.Geteuid() {
			hasSelf = true
		}
	}
	if !hasSelf {
		accounts = append(accounts, Account{Name: "self", UID: os.Geteuid(), GID: os.Getegid()})
	}

	for i := range accounts {
		if accounts[i].Home == "" {
			accounts[i].Home = accounts[i].Name
		}
		if !filepath.IsAbs(accounts[i].Home) {
			accounts[i].Home = filepath.Join(env.HomeBase, accounts[i].Home)
		}
		if accounts[i].NoHome {
			continue
		}
		if err := os.MkdirAll(accounts[i].Home, 0755); err != nil {
			t.Fatalf("Failed to create home %s: %v", accounts[i].Home, err)
		}
	}

	env.Accounts = accounts
	env.Resolver = NewResolver(env.FS, accounts...)
	return env
}

// Etc returns the managed files directory
func (e *Environment) Etc() string {
	return filepath.Join(e.Root, "etc")
}

// AddEtcFile creates a managed file and returns its path
func (e *Environment) AddEtcFile(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, e.Etc(), name, content)
}

// Home returns the home directory of the named account
func (e *Environment) Home(name string) string {
	for _, a := range e.Accounts {
		if a.Name == name {
			return a.Home
		}
	}
	return ""
}
