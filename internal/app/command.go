package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "sheetcli/internal/errors"
	"sheetcli/internal/infrastructure"
	"sheetcli/pkg/contracts"
)

// shutdownTimeout bounds the telemetry flush after a run
const shutdownTimeout = 5 * time.Second

// RunFunc is the body of a tool. args are the positional arguments.
type RunFunc func(ctx context.Context, a *Application, args []string) error

// Command is one command line tool: its flags, its synopsis and its body.
type Command struct {
	Name string
	// Synopsis follows the tool name in the usage line.
	Synopsis string
	// MinArgs is the number of positional arguments required.
	MinArgs int
	Flags   *flag.FlagSet
	Common  *CommonFlags
	Run     RunFunc
}

// NewCommand creates a command with the common flags already registered.
// Tools add their own flags to cmd.Flags before calling Execute.
func NewCommand(name, synopsis string, minArgs int, run RunFunc) *Command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cmd := &Command{
		Name:     name,
		Synopsis: synopsis,
		MinArgs:  minArgs,
		Flags:    fs,
		Common:   RegisterCommonFlags(fs),
		Run:      run,
	}
	fs.Usage = cmd.usage
	return cmd
}

func (c *Command) usage() {
	out := c.Flags.Output()
	fmt.Fprintf(out, "Usage: %s %s\n\nFlags:\n", c.Name, c.Synopsis)
	c.Flags.PrintDefaults()
}

// Execute parses args, runs the tool and returns the process exit code.
// Usage problems print the usage text to stderr and return 2.
func (c *Command) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c.Flags.SetOutput(stderr)

	positional, err := ParseInterspersed(c.Flags, args)
	if errors.Is(err, flag.ErrHelp) {
		return apperrors.ExitOK
	}
	if err != nil {
		return apperrors.ExitUsage
	}

	if c.Common.Version {
		fmt.Fprintln(stdout, contracts.GetVersionString(c.Name))
		return apperrors.ExitOK
	}

	if len(positional) < c.MinArgs {
		fmt.Fprintf(stderr, "%s: expected at least %d arguments, got %d\n", c.Name, c.MinArgs, len(positional))
		c.usage()
		return apperrors.ExitUsage
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureTraceID(ctx)

	a, err := NewApplication(c.Name, c.Common)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", c.Name, err)
		if apperrors.IsUsage(err) {
			c.usage()
		}
		return apperrors.ExitCode(err)
	}
	a.Out = stdout
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(stderr, "%s: shutdown: %v\n", c.Name, err)
		}
	}()

	start := time.Now()
	a.Logger.InfoContext(ctx, "Command started",
		slog.Any("args", positional))

	if err := c.Run(ctx, a, positional); err != nil {
		infrastructure.LogError(ctx, a.Logger, "Command failed", err)
		fmt.Fprintf(stderr, "%s: %v\n", c.Name, err)
		if apperrors.IsUsage(err) {
			c.usage()
		}
		return apperrors.ExitCode(err)
	}

	a.Logger.InfoContext(ctx, "Command complete",
		slog.Duration("duration", time.Since(start)))
	return apperrors.ExitOK
}
