package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/haus/pkg/logging"
)

const (
	// EnvHausPath overrides the installation root
	EnvHausPath = "HAUS_PATH"

	// EtcDir is the subdirectory of the root holding managed files
	EtcDir = "etc"
)

// executable is swapped in tests
var executable = os.Executable

// InstallRoot returns the root of the haus installation: the directory
// above the one containing the executable, so <root>/bin/haus yields <root>.
// Symlinks to the executable are resolved first. When the executable cannot
// be located the working directory is used.
func InstallRoot() string {
	exe, err := executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
			exe = resolved
		}
		return filepath.Dir(filepath.Dir(exe))
	}
	logger := logging.GetLogger("paths")
	logger.Debug().Err(err).Msg("Cannot locate executable, using working directory")

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// DefaultPath returns override, with ~ expanded and made absolute, when it
// is non-empty, and InstallRoot otherwise
func DefaultPath(override string) string {
	if override == "" {
		return InstallRoot()
	}
	expanded := ExpandHome(override)
	if abs, err := filepath.Abs(expanded); err == nil {
		return abs
	}
	return expanded
}

// Etc returns the managed files directory under root
func Etc(root string) string {
	return filepath.Join(root, EtcDir)
}

// ExpandHome expands a leading ~ to the current user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	if xdg.Home == "" {
		return path
	}
	return filepath.Join(xdg.Home, strings.TrimPrefix(path, "~"))
}
