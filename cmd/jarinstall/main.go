package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarinstall/internal/cli"
	"github.com/matzehuels/jarinstall/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(exitStatus(run(ctx)))
}

// exitStatus maps the command result to a process exit status.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	if stderrors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeUnresolved:
		var unresolved *errors.UnresolvedError
		if stderrors.As(err, &unresolved) {
			// Already reported line by line.
			return unresolved.ExitStatus()
		}
	case "":
		// Uncoded errors come from argument parsing.
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		fmt.Fprintln(os.Stderr, "Run 'jarinstall --help' for usage.")
		return 1
	}
	fmt.Fprintln(os.Stderr, errors.UserMessage(err))
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
