package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

const stdinName = "-"

// input is one document named on the command line.
type input struct {
	name string
	text string
}

// inputNames defaults to standard input when no paths are given.
func inputNames(args []string) []string {
	if len(args) == 0 {
		return []string{stdinName}
	}
	return args
}

func readInput(stdin io.Reader, name string) (input, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return input{}, fmt.Errorf("read %s: %w", name, err)
	}
	return input{name: name, text: string(data)}, nil
}

// displayName is used in messages about an input.
func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}

// forEach reads every named input and calls fn on it with at most jobs calls
// in flight. Results land in a slice indexed like names, so callers can
// report them in command-line order. The first read or fn error cancels the
// remaining work.
func forEach[R any](ctx context.Context, stdin io.Reader, names []string, jobs int, fn func(context.Context, input) (R, error)) ([]R, error) {
	// standard input can be read only once
	var fromStdin *input
	for _, name := range names {
		if name == stdinName {
			in, err := readInput(stdin, stdinName)
			if err != nil {
				return nil, err
			}
			fromStdin = &in
			break
		}
	}

	results := make([]R, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var in input
			if name == stdinName {
				in = *fromStdin
			} else {
				var err error
				if in, err = readInput(stdin, name); err != nil {
					return err
				}
			}
			r, err := fn(ctx, in)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
