package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newSSACommand(c *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssa [FILE...]",
		Short: "Print the SSA form of a function from each file",
		Long: "Print the SSA form of a function from each file. With no FILE, or when\n" +
			"FILE is -, the source is read from standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), c, args, true)
		},
	}
	c.opts.installRewriteFlags(cmd.Flags())
	return cmd
}

func newCheckCommand(c *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [FILE...]",
		Short: "Report whether each file's function can be converted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), c, args, false)
		},
	}
	c.opts.installRewriteFlags(cmd.Flags())
	return cmd
}

// runConvert converts the inputs in parallel and reports them in input order.
func runConvert(ctx context.Context, c *CLI, args []string, printOutput bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inputs, err := c.readInputs(args)
	if err != nil {
		return err
	}

	conv := &Converter{Config: c.cfg, Logger: c.log}
	if db := c.openCache(ctx); db != nil {
		defer db.Close()
		conv.Cache = db
	}

	results := make([]*Result, len(inputs))
	errs := make([]error, len(inputs))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(c.opts.Jobs, 1))
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			results[i], errs[i] = conv.Convert(gctx, in.name, in.src, c.opts.Func)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, in := range inputs {
		if errs[i] != nil {
			printErrors(c.Err, errs[i], c.color())
			failed++
			continue
		}
		res := results[i]
		for _, d := range res.Dumps {
			fmt.Fprintf(c.Err, "--- %s: %s (%s) ---\n%s", in.name, d.Stage, d.Kind, d.Output)
		}
		switch {
		case !printOutput:
			fmt.Fprintf(c.Out, "%s: ok (%s)\n", in.name, res.Func)
		case len(inputs) > 1:
			fmt.Fprintf(c.Out, "# %s\n%s", in.name, res.Output)
		default:
			fmt.Fprint(c.Out, res.Output)
		}
		c.log.WithField("file", in.name).WithField("cached", res.Cached).Info("converted")
	}
	if failed > 0 {
		return StatusError{StatusCode: 1}
	}
	return nil
}
