package tasks

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/logging"
	"github.com/arthur-debert/haus/pkg/task"
)

// Unlink removes dotfile symlinks pointing into etc
type Unlink struct{ *task.Task }

// NewUnlink returns the unlink command for args
func NewUnlink(env *task.Env, args []string) *Unlink {
	return &Unlink{task.New(env, "unlink", args)}
}

// Run returns true when no link was left in place
func (u *Unlink) Run() (interface{}, error) {
	rest, err := u.Task.Run()
	if err != nil {
		return nil, err
	}
	if err := noArgs(u.Name, rest); err != nil {
		return nil, err
	}

	files, err := u.Etcfiles()
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("tasks.unlink")
	for _, user := range u.Users() {
		for _, src := range files {
			dot := u.Dotfile(user, src)
			if !u.pointsIntoEtc(dot) {
				logger.Debug().Str("target", dot).Msg("Not a link into etc, leaving it")
				continue
			}
			u.Queue.AddRemoval(user, dot)
		}
	}

	results, err := u.Execute(u.ExecuteOptions())
	if err != nil {
		return nil, err
	}
	return succeeded(results), nil
}

func (u *Unlink) pointsIntoEtc(dot string) bool {
	fs := u.Env.FS
	if !filesystem.IsSymlink(fs, dot) {
		return false
	}
	target, err := fs.Readlink(dot)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(dot), target)
	}
	etc, err := filepath.Abs(u.Etc())
	if err != nil {
		return false
	}
	return strings.HasPrefix(filepath.Clean(target), etc+string(filepath.Separator))
}
