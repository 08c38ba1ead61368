// Package cli implements the retransdiff command line: diffing a text against its retranslation, rebuilding it with selected hunks reverted, and managing history, settings,
// and the HTTP server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Version is the retransdiff version. It is a var so build tooling can override it with -ldflags "-X .../internal/cli.Version=1.2.3".
var Version = "0.3.0"

// RunOptions override standard I/O and the environment. Zero fields use the process defaults. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// LookupEnv is used for configuration lookups. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// WorkDir is where the nearest .retransdiff.yaml search starts and relative input paths resolve. Defaults to the current working directory.
	WorkDir string
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// In cases of errors, Run has already written an error message to opts.Err || Stderr.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	a := newApp(opts)
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(argv)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.err)

	cmd, err := root.ExecuteContextC(context.Background())
	if err == nil {
		return 0, nil
	}

	fmt.Fprintf(a.err, "error: %v\n", err)
	if isUsageError(err) {
		if cmd == nil {
			cmd = root
		}
		fmt.Fprintf(a.err, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return 2, err
	}
	return 1, err
}

// usageError marks errors caused by malformed arguments or flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func isUsageError(err error) bool {
	var ue usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra reports unknown subcommands as plain errors.
	return strings.HasPrefix(err.Error(), "unknown command")
}

func defaultIO(opts *RunOptions) (io.Reader, io.Writer, io.Writer) {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}
	return in, out, errW
}
