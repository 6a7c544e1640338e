// Command rknl reads a closed lambda term, reduces it to β-normal form
// with the RKNL machine, and prints the result in Binary Lambda Calculus.
package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blclang/rknl/internal/blc"
	"github.com/blclang/rknl/internal/machine"
	"github.com/blclang/rknl/internal/rknllog"
	"github.com/blclang/rknl/internal/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		trace     bool
		verbose   bool
		stepLimit int
	)

	cmd := &cobra.Command{
		Use:   "rknl <path>",
		Short: "Reduce a Binary Lambda Calculus term to normal form",
		Long: "rknl reads a term in Binary Lambda Calculus from a file (or '-' for stdin), " +
			"reduces it to β-normal form with the RKNL abstract machine, and writes the " +
			"result back in Binary Lambda Calculus.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], trace, verbose, stepLimit)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log every machine transition")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	cmd.Flags().IntVar(&stepLimit, "steps", 0, "abort after this many transitions (0 = unbounded)")

	return cmd
}

func run(path string, trace, verbose bool, stepLimit int) error {
	logger, err := rknllog.New(verbose)
	if err != nil {
		return errors.Wrap(err, "rknl: failed to initialize logger")
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()
	sink := rknllog.NewSink(logger)

	input, err := openInput(path)
	if err != nil {
		return errors.Wrap(err, "rknl: failed to open input")
	}
	defer input.Close()

	parsed, err := blc.Read(input)
	if err != nil {
		return errors.Wrap(err, "rknl: failed to parse input")
	}

	namer := term.NewNamer(1)
	unique := term.ToUnique(parsed, namer, sink)

	opts := []machine.Option{machine.WithDiagnostics(sink)}
	if stepLimit > 0 {
		opts = append(opts, machine.WithStepBudget(stepLimit))
	}
	steps := 0
	opts = append(opts, machine.WithTrace(func(i int, label byte, _ any) {
		if trace {
			sugar.Infow("transition", "step", i, "label", string(label))
		}
		steps = i + 1
	}, nil))

	start := time.Now()
	reduced, outcome := machine.Reduce(unique, namer, opts...)
	elapsed := time.Since(start)

	switch outcome {
	case machine.OutcomeNormalForm:
		sugar.Infow("reduction complete", "elapsed", elapsed.String(), "steps", steps)
	case machine.OutcomeBudgetExceeded:
		return errors.New("rknl: step budget exceeded before reaching a normal form")
	default:
		return errors.New("rknl: reduction aborted, see diagnostics")
	}

	indexed := term.ToIndex(reduced, sink)
	if err := blc.Write(os.Stdout, indexed); err != nil {
		return errors.Wrap(err, "rknl: failed to write output")
	}
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
