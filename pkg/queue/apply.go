package queue

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/logging"
)

// applier performs the write of an operation once the executor has checked
// the target and cleared any conflict
type applier interface {
	symlink(op Operation) error
	write(op Operation, data []byte, perm fs.FileMode) error
	remove(op Operation) error
}

// newApplier runs writes through synthfs when the backend supports it and
// directly through fsys otherwise
func newApplier(ctx context.Context, fsys filesystem.FS) applier {
	if s, ok := fsys.(filesystem.Synthesizer); ok {
		return &synthApplier{
			ctx:    ctx,
			fs:     s.Synth(),
			logger: logging.GetLogger("queue.synthfs"),
		}
	}
	return &fsApplier{fs: fsys}
}

type fsApplier struct {
	fs filesystem.FS
}

func (a *fsApplier) symlink(op Operation) error {
	return a.fs.Symlink(op.Source, op.Target)
}

func (a *fsApplier) write(op Operation, data []byte, perm fs.FileMode) error {
	return a.fs.WriteFile(op.Target, data, perm)
}

func (a *fsApplier) remove(op Operation) error {
	return a.fs.Remove(op.Target)
}

// synthApplier runs each operation as a single-step synthfs pipeline
type synthApplier struct {
	ctx    context.Context
	fs     synthfs.FileSystem
	logger zerolog.Logger
}

func (a *synthApplier) symlink(op Operation) error {
	rel, err := relative(op.Target)
	if err != nil {
		return err
	}
	// The link content stays absolute so it resolves from any directory
	source, err := filepath.Abs(op.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", op.Source)
	}

	symlinkOp := operations.NewCreateSymlinkOperation(operationID("symlink", op), rel)
	symlinkOp.SetDescriptionDetail("target", source)
	symlinkOp.SetItem(&symlinkItem{path: rel, target: source})
	return a.run(synthfs.NewOperationsPackageAdapter(symlinkOp))
}

func (a *synthApplier) write(op Operation, data []byte, perm fs.FileMode) error {
	rel, err := relative(op.Target)
	if err != nil {
		return err
	}

	createOp := operations.NewCreateFileOperation(operationID("write-file", op), rel)
	createOp.SetItem(&fileItem{path: rel, content: data, mode: perm})
	return a.run(synthfs.NewOperationsPackageAdapter(createOp))
}

func (a *synthApplier) remove(op Operation) error {
	rel, err := relative(op.Target)
	if err != nil {
		return err
	}

	deleteOp := operations.NewDeleteOperation(operationID("delete", op), rel)
	return a.run(synthfs.NewOperationsPackageAdapter(deleteOp))
}

func (a *synthApplier) run(op synthfs.Operation) error {
	pipeline := synthfs.NewMemPipeline()
	if err := pipeline.Add(op); err != nil {
		return errors.Wrap(err, errors.ErrOperationExecute, "failed to add operation to pipeline")
	}

	result := synthfs.NewExecutor().Run(a.ctx, pipeline, a.fs)
	if err := result.GetError(); err != nil {
		a.logger.Debug().Err(err).Msg("Pipeline execution failed")
		return err
	}
	return nil
}

func operationID(prefix string, op Operation) core.OperationID {
	return core.OperationID(fmt.Sprintf("%s-%s-%s", prefix, op.User.Name, op.Target))
}

// relative converts path to the form synthfs expects below SynthRoot
func relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", path)
	}
	rel, err := filepath.Rel(filesystem.SynthRoot, abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot convert %s", path)
	}
	return rel, nil
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type symlinkItem struct {
	path   string
	target string
}

func (s *symlinkItem) Path() string   { return s.path }
func (s *symlinkItem) Type() string   { return "symlink" }
func (s *symlinkItem) Target() string { return s.target }
