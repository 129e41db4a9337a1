package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "vimrc")
	testContent := []byte("set nocompatible")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "vimrc", info.Name())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.MkdirAll(filepath.Join(tmpDir, "home", "guns"), 0755))
	assert.True(t, IsDir(fs, filepath.Join(tmpDir, "home", "guns")))

	link := filepath.Join(tmpDir, "home", "guns", ".vimrc")
	require.NoError(t, fs.Symlink(testFile, link))
	assert.True(t, IsSymlink(fs, link))
	assert.False(t, IsSymlink(fs, testFile))

	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, testFile, target)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fs.Remove(link))
	_, err = fs.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}

func TestNewMemory(t *testing.T) {
	fs := NewMemory()

	require.NoError(t, fs.MkdirAll("/haus/etc", 0755))
	require.NoError(t, fs.WriteFile("/haus/etc/zshrc", []byte("# zsh"), 0644))
	require.NoError(t, fs.MkdirAll("/home/guns", 0755))

	assert.True(t, IsDir(fs, "/home/guns"))
	assert.False(t, IsDir(fs, "/home/nobody"))
	assert.False(t, IsDir(fs, "/haus/etc/zshrc"))

	t.Run("simulated symlinks", func(t *testing.T) {
		require.NoError(t, fs.Symlink("/haus/etc/zshrc", "/home/guns/.zshrc"))
		assert.True(t, IsSymlink(fs, "/home/guns/.zshrc"))

		target, err := fs.Readlink("/home/guns/.zshrc")
		require.NoError(t, err)
		assert.Equal(t, "/haus/etc/zshrc", target)

		assert.Error(t, fs.Symlink("/haus/etc/zshrc", "/home/guns/.zshrc"), "existing link")

		_, err = fs.Readlink("/haus/etc/zshrc")
		assert.Error(t, err, "regular file is not a link")
	})

	t.Run("read directory fails", func(t *testing.T) {
		_, err := fs.ReadFile("/haus/etc")
		assert.Error(t, err)
	})
}
