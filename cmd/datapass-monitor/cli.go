package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Dependencies holds what every command needs to run.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool             `short:"v" help:"Log fetch and parse details."`
	Log     string           `env:"DATAPASS_LOG" type:"path" placeholder:"FILE" help:"Append JSON log lines to FILE."`
	Version kong.VersionFlag `help:"Print the version and exit."`

	Show       ShowCmd       `cmd:"" default:"withargs" help:"Print the current data usage (default)."`
	Watch      WatchCmd      `cmd:"" help:"Keep the usage on screen and refresh it periodically."`
	Doctor     DoctorCmd     `cmd:"" help:"Check that the usage page can be fetched and read."`
	Completion CompletionCmd `cmd:"" help:"Print a shell completion script."`
}

// interactive reports whether stdin and the given output are both terminals.
func interactive(stdout io.Writer) bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
