package cli

// Help and error messages of the dispatcher
const (
	MsgUsage    = "Usage: haus [options] COMMAND [command options]"
	MsgCommands = "Commands:"
	MsgOptions  = "Options:"
	MsgMore     = "Run 'haus COMMAND --help' for the options of a command."

	MsgNoCommand      = "no command given"
	MsgUnknownCommand = "unknown command %q"
	MsgVersion        = "version requested"
)
