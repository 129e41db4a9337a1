package queue

import (
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/logging"
	"github.com/arthur-debert/haus/pkg/output/styles"
)

// executor applies the operations of one user's batch
type executor struct {
	opts  ExecuteOptions
	apply applier
}

func (e *executor) run(op Operation) Result {
	logger := logging.GetLogger("queue.executor").With().
		Str("kind", op.Kind.String()).
		Str("user", op.User.Name).
		Str("target", op.Target).
		Logger()

	var result Result
	switch op.Kind {
	case Link:
		result = e.link(op)
	case Copy:
		result = e.copy(op)
	case Removal:
		result = e.remove(op)
	default:
		result = Result{Operation: op, Status: StatusFailed,
			Error: errors.Newf(errors.ErrInternal, "unknown operation kind %d", int(op.Kind))}
	}

	switch result.Status {
	case StatusApplied:
		e.opts.Log("%s", styles.Render(op.Kind.String(), op.String()))
	case StatusPlanned:
		e.opts.Log("would %s", styles.Render(op.Kind.String(), op.String()))
	case StatusSkipped:
		e.opts.Log("%s", styles.Render("skip", "skipping "+op.Target+": "+errors.UserMessage(result.Error)))
	}

	logger.Debug().Str("status", string(result.Status)).Msg("Operation done")
	return result
}

func (e *executor) conflict(op Operation, reason string) Result {
	return Result{
		Operation: op,
		Status:    StatusSkipped,
		Error: errors.Newf(errors.ErrOperationConflict, "%s (use --force to replace)", reason).
			WithDetail("target", op.Target),
	}
}

func failed(op Operation, err error) Result {
	return Result{Operation: op, Status: StatusFailed, Error: err}
}

// clear removes an existing target before it is replaced. Directories are
// never removed.
func (e *executor) clear(op Operation) error {
	if filesystem.IsDir(e.opts.FS, op.Target) && !filesystem.IsSymlink(e.opts.FS, op.Target) {
		return errors.Newf(errors.ErrOperationConflict, "%s is a directory", op.Target).
			WithDetail("target", op.Target)
	}
	if err := e.opts.FS.Remove(op.Target); err != nil && !isNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", op.Target)
	}
	return nil
}

func (e *executor) link(op Operation) Result {
	fs := e.opts.FS

	if _, err := fs.Lstat(op.Target); err == nil {
		if target, rerr := fs.Readlink(op.Target); rerr == nil && filepath.Clean(target) == filepath.Clean(op.Source) {
			return Result{Operation: op, Status: StatusUnchanged}
		}
		if !e.opts.Force {
			return e.conflict(op, op.Target+" already exists")
		}
		if e.opts.Noop {
			return Result{Operation: op, Status: StatusPlanned}
		}
		if err := e.clear(op); err != nil {
			return failed(op, err)
		}
	} else if !isNotExist(err) {
		return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", op.Target))
	} else if e.opts.Noop {
		return Result{Operation: op, Status: StatusPlanned}
	}

	if err := e.apply.symlink(op); err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", op.Target).
			WithDetail("source", op.Source))
	}
	return Result{Operation: op, Status: StatusApplied}
}

func (e *executor) copy(op Operation) Result {
	fs := e.opts.FS

	info, err := fs.Stat(op.Source)
	if err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", op.Source))
	}
	data, err := fs.ReadFile(op.Source)
	if err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", op.Source))
	}

	if _, err := fs.Lstat(op.Target); err == nil {
		if !filesystem.IsSymlink(fs, op.Target) {
			if current, rerr := fs.ReadFile(op.Target); rerr == nil && bytes.Equal(current, data) {
				return Result{Operation: op, Status: StatusUnchanged}
			}
		}
		if !e.opts.Force {
			return e.conflict(op, op.Target+" already exists")
		}
		if e.opts.Noop {
			return Result{Operation: op, Status: StatusPlanned}
		}
		if err := e.clear(op); err != nil {
			return failed(op, err)
		}
	} else if !isNotExist(err) {
		return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", op.Target))
	} else if e.opts.Noop {
		return Result{Operation: op, Status: StatusPlanned}
	}

	if err := e.apply.write(op, data, info.Mode().Perm()); err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", op.Target))
	}
	if e.opts.Chown {
		if err := fs.Lchown(op.Target, op.User.UID, op.User.GID); err != nil {
			return failed(op, errors.Wrapf(err, errors.ErrFileWrite, "cannot chown %s", op.Target).
				WithDetail("user", op.User.Name))
		}
	}
	return Result{Operation: op, Status: StatusApplied}
}

func (e *executor) remove(op Operation) Result {
	fs := e.opts.FS

	if _, err := fs.Lstat(op.Target); err != nil {
		if isNotExist(err) {
			return Result{Operation: op, Status: StatusUnchanged}
		}
		return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", op.Target))
	}
	if !filesystem.IsSymlink(fs, op.Target) {
		return e.conflict(op, op.Target+" is not a symlink")
	}
	if e.opts.Noop {
		return Result{Operation: op, Status: StatusPlanned}
	}
	if err := e.apply.remove(op); err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", op.Target))
	}
	return Result{Operation: op, Status: StatusApplied}
}
