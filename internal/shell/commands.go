package shell

import (
	"errors"
	"fmt"
)

// Command names an interactive command.
type Command string

const (
	CmdAdd    Command = "add"
	CmdShow   Command = "show"
	CmdList   Command = "list"
	CmdDelete Command = "delete"
	CmdSearch Command = "search"
	CmdHelp   Command = "help"
	CmdQuit   Command = "quit"
)

type commandSpec struct {
	name    Command
	args    int
	usage   string
	summary string
}

// commands is the arity table, in help order.
var commands = []commandSpec{
	{CmdAdd, 2, "add <alias> <link>", "Save a repository link under an alias"},
	{CmdShow, 1, "show <alias>|all", "Show one repository, or all of them"},
	{CmdList, 0, "list", "List saved aliases"},
	{CmdDelete, 1, "delete <alias>", "Delete the oldest entry with this alias"},
	{CmdSearch, 1, "search <pattern>", "Show repositories whose alias matches a glob"},
	{CmdHelp, 0, "help", "Show this help"},
	{CmdQuit, 0, "quit", "Save changes and exit"},
}

var (
	// ErrUnknownCommand is returned for a command name not in the table.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrTooFewArgs is returned when a command gets fewer arguments than it needs.
	ErrTooFewArgs = errors.New("too few arguments")

	// ErrTooManyArgs is returned when a command gets more arguments than it takes.
	ErrTooManyArgs = errors.New("too many arguments")
)

// CommandError reports a command line that failed validation.
// Kind is one of ErrUnknownCommand, ErrTooFewArgs or ErrTooManyArgs.
type CommandError struct {
	Name  string
	Kind  error
	Got   int
	Want  int
	Usage string
}

func (e *CommandError) Error() string {
	if errors.Is(e.Kind, ErrUnknownCommand) {
		return fmt.Sprintf("unknown command '%s'. Type 'help' for a list of commands", e.Name)
	}
	return fmt.Sprintf("%v for '%s': got %d, want %d (usage: %s)", e.Kind, e.Name, e.Got, e.Want, e.Usage)
}

func (e *CommandError) Unwrap() error {
	return e.Kind
}

// Validate looks up name in the arity table and checks the argument count.
func Validate(name string, argc int) (Command, error) {
	spec, ok := lookup(name)
	if !ok {
		return "", &CommandError{Name: name, Kind: ErrUnknownCommand}
	}
	switch {
	case argc < spec.args:
		return "", &CommandError{Name: name, Kind: ErrTooFewArgs, Got: argc, Want: spec.args, Usage: spec.usage}
	case argc > spec.args:
		return "", &CommandError{Name: name, Kind: ErrTooManyArgs, Got: argc, Want: spec.args, Usage: spec.usage}
	}
	return spec.name, nil
}

// Arity returns the number of arguments a command takes.
func Arity(c Command) (int, bool) {
	spec, ok := lookup(string(c))
	return spec.args, ok
}

func lookup(name string) (commandSpec, bool) {
	for _, spec := range commands {
		if string(spec.name) == name {
			return spec, true
		}
	}
	return commandSpec{}, false
}
