package cobrax

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/haus/internal/version"
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/options"
	"github.com/arthur-debert/haus/pkg/output"
	"github.com/arthur-debert/haus/pkg/task"
)

// Shells lists the shells Completion can generate scripts for
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// Configurable is implemented by commands built on task.Task
type Configurable interface {
	Options() *options.Options
}

// Tree builds the cobra command tree for the commands in env.Registry
func Tree(env *task.Env) *cobra.Command {
	root := &cobra.Command{
		Use:               task.Program + " <command> [options]",
		Short:             "Manage dotfiles in users' home directories",
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		Run:               func(*cobra.Command, []string) {},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().CountP("verbose", "v", "Increase verbosity (repeatable)")
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	if env.Registry == nil {
		return root
	}

	for _, entry := range env.Registry.Entries() {
		cmd := &cobra.Command{
			Use:   entry.Name + " [options]",
			Short: entry.Description,
			Long:  entry.Help,
			Run:   func(*cobra.Command, []string) {},
		}

		if c, ok := entry.New(env, nil).(Configurable); ok {
			cmd.Flags().AddFlagSet(c.Options().FlagSet())
		}
		annotate(cmd)

		root.AddCommand(cmd)
	}
	return root
}

// annotate adds value completions for the flags that take paths or a
// fixed set of values
func annotate(cmd *cobra.Command) {
	for _, name := range []string{"path", "output"} {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.MarkFlagDirname(name)
		}
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format",
			cobra.FixedCompletions(output.Formats, cobra.ShellCompDirectiveNoFileComp))
	}
	if cmd.Flags().Lookup("users") != nil {
		_ = cmd.RegisterFlagCompletionFunc("users", cobra.NoFileCompletions)
	}
}

// Completion writes the completion script for shell
func Completion(root *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = root.GenBashCompletionV2(w, true)
	case "zsh":
		err = root.GenZshCompletion(w)
	case "fish":
		err = root.GenFishCompletion(w, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q (supported: bash, zsh, fish, powershell)", shell).
			WithDetail("shell", shell)
	}

	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to generate %s completion", shell)
	}
	return nil
}

// IsCompletionRequest reports whether name is the hidden command the
// generated completion scripts call back into
func IsCompletionRequest(name string) bool {
	return name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd
}

// Complete answers a completion request made by a generated script. args
// starts with the request command name.
func Complete(env *task.Env, args []string) error {
	root := Tree(env)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "completion failed")
	}
	return nil
}

func manHeader(cmd *cobra.Command) *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   strings.ToUpper(pageName(cmd)),
		Section: "1",
		Source:  version.String(),
		Manual:  "haus manual",
	}
}

// ManPage writes the man page of the top level command
func ManPage(root *cobra.Command, w io.Writer) error {
	if err := doc.GenMan(root, manHeader(root), w); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to generate man page")
	}
	return nil
}

// ManTree writes one man page per command into dir through fsys and returns
// the paths written
func ManTree(root *cobra.Command, fsys filesystem.FS, dir string) ([]string, error) {
	cmds := []*cobra.Command{root}
	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() {
			cmds = append(cmds, cmd)
		}
	}

	pages := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		var buf bytes.Buffer
		if err := doc.GenMan(cmd, manHeader(cmd), &buf); err != nil {
			return pages, errors.Wrapf(err, errors.ErrInternal, "failed to generate man page for %s", cmd.CommandPath())
		}
		page := filepath.Join(dir, manName(cmd))
		if err := fsys.WriteFile(page, buf.Bytes(), 0644); err != nil {
			return pages, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", page).
				WithDetail("dir", dir)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func pageName(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "-")
}

// manName is the file name of cmd's page, as man(1) looks it up
func manName(cmd *cobra.Command) string {
	return fmt.Sprintf("%s.1", pageName(cmd))
}
