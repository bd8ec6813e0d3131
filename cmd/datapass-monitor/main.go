package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/olliecrow/datapass_monitor/internal/config"
	"github.com/olliecrow/datapass_monitor/internal/logging"
	"github.com/olliecrow/datapass_monitor/internal/usage"
)

var version = "dev"

func main() {
	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		exited   bool
		exitCode int
	)
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("datapass-monitor"),
		kong.Description("Show the remaining mobile data volume reported by the datapass page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
		kong.Vars{
			"version":     version,
			"default_url": usage.DefaultURL,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	kongCtx, err := parser.Parse(args)
	// --help and --version print and request an exit; parsing carries on
	// because the exit hook returns.
	if exited {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	logger, closeLog, err := logging.New(logging.Options{
		Verbose: cli.Verbose,
		File:    cli.Log,
		Console: !strings.HasPrefix(kongCtx.Command(), "watch"),
		Stderr:  stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}
	if err := kongCtx.Run(deps); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
