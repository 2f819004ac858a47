package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/funssa/internal/evaluator"
)

type runOptions struct {
	compare bool
}

func newRunCommand(c *CLI) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run FILE [ARG...]",
		Short: "Convert a function and call it with the given arguments",
		Long: "Convert a function and call it with the given arguments. Arguments are\n" +
			"integers, True, False, None, or otherwise strings.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(c, &opts, args[0], args[1:])
		},
	}
	c.opts.installRewriteFlags(cmd.Flags())
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Also call the unconverted function and fail if the results differ")
	return cmd
}

func runRun(c *CLI, opts *runOptions, file string, rawArgs []string) error {
	inputs, err := c.readInputs([]string{file})
	if err != nil {
		return err
	}
	in := inputs[0]

	conv := &Converter{Config: c.cfg, Logger: c.log}
	pctx := conv.Run(in.name, in.src, c.opts.Func)
	if err := pctx.Err(); err != nil {
		printErrors(c.Err, err, c.color())
		return StatusError{StatusCode: 1}
	}
	globals, err := evaluator.RuntimeOf(pctx)
	if err != nil {
		return err
	}

	args := make([]evaluator.Object, len(rawArgs))
	for i, a := range rawArgs {
		args[i] = evaluator.ParseValue(a)
	}

	got, err := evaluator.CallRewritten(globals, pctx.Function, in.name, args...)
	if err != nil {
		printErrors(c.Err, err, c.color())
		return StatusError{StatusCode: 1}
	}
	fmt.Fprintln(c.Out, got.Inspect())

	if opts.compare {
		want, err := evaluator.CallRewritten(globals, pctx.Original, in.name, args...)
		if err != nil {
			printErrors(c.Err, err, c.color())
			return StatusError{StatusCode: 1}
		}
		if !evaluator.Equal(want, got) {
			return StatusError{Status: fmt.Sprintf("results differ: original %s, converted %s", want.Inspect(), got.Inspect()), StatusCode: 2}
		}
	}
	return nil
}
