package filesystem

import (
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// SynthRoot is the directory synthfs operation paths are relative to
const SynthRoot = "/"

// Synthesizer is implemented by backends whose writes can run as synthfs
// pipelines. The returned filesystem is rooted at SynthRoot.
type Synthesizer interface {
	Synth() synthfs.FileSystem
}

// Synth returns the synthfs view of the OS filesystem
func (o *osFS) Synth() synthfs.FileSystem {
	return synthfilesystem.NewOSFileSystem(SynthRoot)
}
