package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/haus/internal/cli"
	"github.com/arthur-debert/haus/pkg/config"
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/task"
	"github.com/arthur-debert/haus/pkg/tasks"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "haus: %s\n", errors.UserMessage(err))
		os.Exit(cli.ExitFailure)
	}

	reg := task.NewRegistry()
	reg.MustInstall(tasks.Definitions...)

	os.Exit(cli.Execute(os.Args[1:], task.NewEnv(reg, settings)))
}
