package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// aferoFS implements FS using afero. Backends without symlink support
// (MemMapFs) get simulated links tracked in links.
type aferoFS struct {
	fs afero.Fs

	mu    sync.RWMutex
	links map[string]string
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) FS {
	return &aferoFS{fs: fs, links: make(map[string]string)}
}

// NewMemory returns an FS backed by afero's in-memory filesystem
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) link(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	target, ok := a.links[filepath.Clean(name)]
	return target, ok
}

func (a *aferoFS) resolve(name, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(filepath.Dir(name), target)
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	if target, ok := a.link(name); ok {
		return a.Stat(a.resolve(name, target))
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if _, ok := a.link(name); ok {
		info, err := a.fs.Stat(name)
		if err != nil {
			return nil, err
		}
		return symlinkInfo{info}, nil
	}
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		info := entry
		if _, ok := a.link(filepath.Join(name, entry.Name())); ok {
			info = symlinkInfo{entry}
		}
		dirEntries[i] = fs.FileInfoToDirEntry(info)
	}
	return dirEntries, nil
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	if target, ok := a.link(name); ok {
		return a.ReadFile(a.resolve(name, target))
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	if _, err := a.Lstat(newname); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	// The placeholder file carries the target so the tree stays inspectable
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}

	a.mu.Lock()
	a.links[filepath.Clean(newname)] = oldname
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if target, ok := a.link(name); ok {
		return target, nil
	}
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	if _, err := a.fs.Stat(name); err != nil {
		return "", err
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) Remove(name string) error {
	if err := a.fs.Remove(name); err != nil {
		return err
	}
	a.mu.Lock()
	delete(a.links, filepath.Clean(name))
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	if err := a.fs.Rename(oldpath, newpath); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if target, ok := a.links[filepath.Clean(oldpath)]; ok {
		delete(a.links, filepath.Clean(oldpath))
		a.links[filepath.Clean(newpath)] = target
	}
	return nil
}

func (a *aferoFS) Lchown(name string, uid, gid int) error {
	return a.fs.Chown(name, uid, gid)
}

// symlinkInfo reports a simulated link's mode
type symlinkInfo struct {
	fs.FileInfo
}

func (s symlinkInfo) Mode() fs.FileMode {
	return fs.ModeSymlink | 0777
}

func (s symlinkInfo) IsDir() bool {
	return false
}
