// Package cmd implements the schemafix command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	errUsage = errors.New("usage")

	// errInvalidInput reports that some inputs were rejected; the details
	// have already been printed.
	errInvalidInput = errors.New("invalid input")
)

func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		switch {
		case errors.Is(err, errUsage):
			fmt.Fprintln(stderr, "Error:", err)
			return 2
		case errors.Is(err, errInvalidInput):
			return 1
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
