// Package cli is the calories command line: the interactive editor by default
// plus one-shot subcommands that drive the same Coordinator.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/calories/internal/app"
	"github.com/idilsaglam/calories/internal/model"
	"github.com/idilsaglam/calories/internal/tui"
	"github.com/idilsaglam/calories/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks a bad invocation (wrong args, bad flag, bad input value).
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErr(cmd *cobra.Command, err error) error {
	return &usageError{cmd: cmd, err: err}
}

// usageArgs wraps a cobra arg validator so its failures count as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageErr(cmd, err)
		}
		return nil
	}
}

// Run dispatches args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	return run(args, &Deps{
		Out:    os.Stdout,
		Err:    os.Stderr,
		RunTUI: tui.Run,
	})
}

func run(args []string, deps *Deps) int {
	deps.Out, deps.Err = writer(deps.Out), writer(deps.Err)
	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	cmd.SetOut(deps.Out)
	cmd.SetErr(deps.Err)

	err := cmd.Execute()
	deps.close()
	if err == nil {
		return ExitOK
	}

	ui.Fail(deps.Err, err.Error())
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintf(deps.Err, "run '%s --help' for usage\n", ue.cmd.CommandPath())
		return ExitUsage
	case errors.Is(err, model.ErrInvalidCalories), errors.Is(err, app.ErrEmptyInput):
		return ExitUsage
	}
	return ExitError
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
