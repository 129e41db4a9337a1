package task_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/haus/pkg/config"
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/options"
	"github.com/arthur-debert/haus/pkg/queue"
	"github.com/arthur-debert/haus/pkg/task"
	"github.com/arthur-debert/haus/pkg/testutil"
)

func newEnv(t *testing.T, accounts ...testutil.Account) (*task.Env, *testutil.Environment) {
	t.Helper()
	te := testutil.NewEnvironment(t, accounts...)

	reg := task.NewRegistry()
	reg.MustInstall(task.Definition{
		Variant:     &Frobnicate{},
		New:         newFrobnicate,
		Description: "Frobnicate things",
		Help:        "Frobnicates every etc file.",
	})

	return &task.Env{
		Registry: reg,
		FS:       te.FS,
		Resolver: te.Resolver,
		Settings: &config.Settings{Path: te.Root},
		Out:      te.Out,
		Err:      te.Err,
	}, te
}

func TestDefaults(t *testing.T) {
	env, te := newEnv(t)
	tk := task.New(env, "frobnicate", nil)

	rest, err := tk.Run()
	require.NoError(t, err)
	assert.Empty(t, rest)

	o := tk.Options()
	assert.Equal(t, te.Root, o.Path())
	assert.False(t, o.Force)
	assert.False(t, o.Noop)
	assert.False(t, o.Quiet)

	require.Len(t, tk.Users(), 1)
	assert.Equal(t, os.Geteuid(), tk.Users()[0].UID)
	assert.Equal(t, 0, tk.Queue.Len())
}

func TestCommonFlags(t *testing.T) {
	env, _ := newEnv(t,
		testutil.Account{Name: "guns", UID: 4242, GID: 4242},
		testutil.Account{Name: "root", UID: 0, GID: 0},
	)
	tk := task.New(env, "frobnicate", []string{"-p", "/tmp/x", "--users", "0,guns", "-fnq", "extra"})

	rest, err := tk.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"extra"}, rest)

	o := tk.Options()
	assert.Equal(t, "/tmp/x", o.Path())
	assert.True(t, o.Force)
	assert.True(t, o.Noop)
	assert.True(t, o.Quiet)

	list := tk.Users()
	require.Len(t, list, 2)
	assert.Equal(t, "root", list[0].Name)
	assert.Equal(t, 0, list[0].UID)
	assert.Equal(t, "guns", list[1].Name)
	assert.Equal(t, 4242, list[1].UID)
}

func TestUsersWithMissingHome(t *testing.T) {
	env, te := newEnv(t, testutil.Account{Name: "ghost", UID: 4343, NoHome: true})
	tk := task.New(env, "frobnicate", []string{"-f", "-u", "ghost"})

	_, err := tk.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserHomeMissing))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "ghost", details["user"])
	assert.Equal(t, te.Home("ghost"), details["dir"])

	// Nothing from the failed parse is kept
	o := tk.Options()
	assert.False(t, o.Force)
	require.Len(t, o.Users, 1)
	assert.Equal(t, os.Geteuid(), o.Users[0].UID)
}

func TestUnknownUser(t *testing.T) {
	env, _ := newEnv(t)
	tk := task.New(env, "frobnicate", []string{"-u", "nobody-here"})

	_, err := tk.Run()
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserNotFound))
}

func TestEmptyUserList(t *testing.T) {
	env, _ := newEnv(t)
	tk := task.New(env, "frobnicate", []string{"-u", ","})

	_, err := tk.Run()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDefaultUserUnresolvable(t *testing.T) {
	env, _ := newEnv(t, testutil.Account{Name: "guns", UID: 4242})
	env.Resolver = testutil.NewResolver(env.FS, testutil.Account{Name: "guns", UID: 4242, Home: os.TempDir()})

	_, err := task.New(env, "frobnicate", nil).Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserNotFound))

	tk := task.New(env, "frobnicate", []string{"-u", "guns"})
	_, err = tk.Run()
	require.NoError(t, err, "an explicit user list replaces the default")
	assert.Equal(t, "guns", tk.Users()[0].Name)
}

func TestHelp(t *testing.T) {
	env, te := newEnv(t)
	tk := task.New(env, "frobnicate", []string{"--help"})

	_, err := tk.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHelp))

	help := te.Out.String()
	assert.True(t, strings.HasPrefix(help, "Frobnicates every etc file.\n\nUsage: haus frobnicate [options]\n\nOptions:\n"))
	for _, flag := range []string{"--path PATH", "--users a,b,c", "--force", "--noop", "--quiet", "--help"} {
		assert.Contains(t, help, flag)
	}
}

func TestHelpWithoutRegistryText(t *testing.T) {
	env, _ := newEnv(t)
	tk := task.New(env, "unregistered", nil)

	assert.True(t, strings.HasPrefix(tk.Options().Help(), "Usage: haus unregistered [options]\n\nOptions:\n"))
}

func TestFlagsExtension(t *testing.T) {
	env, _ := newEnv(t)
	tk := task.New(env, "frobnicate", []string{"--depth", "3"})
	tk.Flags(func(o *options.Options) {
		o.On("d", "depth", "N", "How deep", func(raw string) error {
			return o.Set("depth", raw)
		})
	})

	_, err := tk.Run()
	require.NoError(t, err)
	assert.Equal(t, "3", tk.Options().Get("depth"))

	help := tk.Options().Help()
	assert.Less(t, strings.Index(help, "--depth"), strings.Index(help, "--force"))

	// Options are memoized
	assert.Same(t, tk.Options(), tk.Options())
}

func TestEtcfiles(t *testing.T) {
	env, te := newEnv(t)
	te.AddEtcFile(t, "vimrc", "set nu")
	te.AddEtcFile(t, "bashrc", "export A=1")
	te.AddEtcFile(t, ".hidden", "x")

	tk := task.New(env, "frobnicate", nil)
	_, err := tk.Run()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(te.Root, "etc"), tk.Etc())

	files, err := tk.Etcfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(te.Etc(), "bashrc"),
		filepath.Join(te.Etc(), "vimrc"),
	}, files)

	u := tk.Users()[0]
	assert.Equal(t, filepath.Join(u.Home, ".bashrc"), tk.Dotfile(u, files[0]))
}

func TestEtcfilesRelativePath(t *testing.T) {
	env, te := newEnv(t)
	te.AddEtcFile(t, "bashrc", "export A=1")
	testutil.Chdir(t, filepath.Dir(te.Root))

	tk := task.New(env, "frobnicate", []string{"-p", filepath.Base(te.Root)})
	_, err := tk.Run()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Base(te.Root), "etc"), tk.Etc())

	files, err := tk.Etcfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(te.Etc(), "bashrc")}, files)
}

func TestEtcfilesMissingDir(t *testing.T) {
	env, _ := newEnv(t)
	tk := task.New(env, "frobnicate", []string{"-p", "/nonexistent/haus"})
	_, err := tk.Run()
	require.NoError(t, err)

	_, err = tk.Etcfiles()
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestLogAndExecute(t *testing.T) {
	env, te := newEnv(t)
	src := te.AddEtcFile(t, "bashrc", "export A=1")

	tk := task.New(env, "frobnicate", nil)
	_, err := tk.Run()
	require.NoError(t, err)

	u := tk.Users()[0]
	tk.Queue.AddLink(u, src, tk.Dotfile(u, src))

	results, err := tk.Execute(tk.ExecuteOptions())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, queue.StatusApplied, results[0].Status)
	assert.Contains(t, te.Out.String(), "link "+src)
	assert.True(t, testutil.SymlinkExists(t, tk.Dotfile(u, src)))
}

func TestQuietSuppressesLog(t *testing.T) {
	env, te := newEnv(t)
	tk := task.New(env, "frobnicate", []string{"-q"})
	_, err := tk.Run()
	require.NoError(t, err)

	tk.Log("hello %s", "world")
	assert.Empty(t, te.Out.String())
}
