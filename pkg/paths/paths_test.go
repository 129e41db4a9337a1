package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubExecutable(t *testing.T, path string, err error) {
	t.Helper()
	orig := executable
	executable = func() (string, error) { return path, err }
	t.Cleanup(func() { executable = orig })
}

func TestInstallRoot(t *testing.T) {
	t.Run("parent of bin directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0755))
		exe := filepath.Join(root, "bin", "haus")
		require.NoError(t, os.WriteFile(exe, nil, 0755))

		stubExecutable(t, exe, nil)

		want, err := filepath.EvalSymlinks(root)
		require.NoError(t, err)
		assert.Equal(t, want, InstallRoot())
	})

	t.Run("follows symlinked executable", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "haus", "bin"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "local", "bin"), 0755))
		exe := filepath.Join(root, "haus", "bin", "haus")
		require.NoError(t, os.WriteFile(exe, nil, 0755))
		link := filepath.Join(root, "local", "bin", "haus")
		require.NoError(t, os.Symlink(exe, link))

		stubExecutable(t, link, nil)

		want, err := filepath.EvalSymlinks(filepath.Join(root, "haus"))
		require.NoError(t, err)
		assert.Equal(t, want, InstallRoot())
	})

	t.Run("falls back to working directory", func(t *testing.T) {
		stubExecutable(t, "", errors.New("no executable"))

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd, InstallRoot())
	})
}

func TestDefaultPath(t *testing.T) {
	stubExecutable(t, "/opt/haus/bin/haus", nil)

	assert.Equal(t, "/opt/haus", DefaultPath(""))
	assert.Equal(t, "/tmp/x", DefaultPath("/tmp/x"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "src", "haus"), DefaultPath("~/src/haus"))
}

func TestEtc(t *testing.T) {
	assert.Equal(t, "/opt/haus/etc", Etc("/opt/haus"))
}

func TestExpandHome(t *testing.T) {
	home := xdg.Home
	require.NotEmpty(t, home)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, ".vimrc"), ExpandHome("~/.vimrc"))
	assert.Equal(t, "/etc/passwd", ExpandHome("/etc/passwd"))
	assert.Equal(t, "~guns/.vimrc", ExpandHome("~guns/.vimrc"))
}
