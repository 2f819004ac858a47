package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/funvibe/funssa/internal/cache"
	"github.com/funvibe/funssa/internal/config"
)

// StatusError reports a failure whose details were already printed.
type StatusError struct {
	Status     string
	StatusCode int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("Status: %s, Code: %d", e.Status, e.StatusCode)
}

// CLI is the state shared by the commands of one invocation.
type CLI struct {
	Streams
	opts Options

	cfg *config.Config
	log *logrus.Entry
}

// NewRootCommand builds the funssa command tree.
func NewRootCommand(streams Streams) *cobra.Command {
	c := &CLI{Streams: streams}
	cmd := &cobra.Command{
		Use:           "funssa [OPTIONS] COMMAND",
		Short:         "Convert straight-line Python functions to single static assignment form",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	c.opts.installFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newSSACommand(c),
		newCheckCommand(c),
		newRunCommand(c),
		newCacheCommand(c),
	)
	return cmd
}

func (c *CLI) setup() error {
	cfg, err := c.opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(c.Err, cfg.LogLevel)
	if err != nil {
		return err
	}
	c.cfg, c.log = cfg, log
	c.log.WithField("cache", cfg.Cache.Path).WithField("prefix", cfg.ReturnPrefix).Debug("configuration loaded")
	return nil
}

func (c *CLI) color() bool {
	return useColor(c.Err, c.opts.NoColor)
}

// openCache returns nil when caching is disabled or the database cannot be
// opened; the cache never makes a conversion fail.
func (c *CLI) openCache(ctx context.Context) *cache.Cache {
	if c.cfg.Cache.Disabled {
		return nil
	}
	db, err := cache.Open(ctx, c.cfg.Cache.Path, c.cfg.Cache.MaxEntries)
	if err != nil {
		c.log.WithError(err).Warn("transform cache unavailable")
		return nil
	}
	return db
}

type input struct {
	name string
	src  string
}

// readInputs reads each named file; no names or "-" reads standard input.
func (c *CLI) readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		var data []byte
		var err error
		name := arg
		if arg == "-" {
			name = "<stdin>"
			data, err = io.ReadAll(c.In)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
		inputs = append(inputs, input{name: name, src: string(data)})
	}
	return inputs, nil
}

// Execute runs the command line args and returns the process exit status.
func Execute(args []string, streams Streams) int {
	cmd := NewRootCommand(streams)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var se StatusError
		if errors.As(err, &se) {
			if se.Status != "" {
				fmt.Fprintln(streams.Err, se.Status)
			}
			return se.StatusCode
		}
		fmt.Fprintln(streams.Err, "Error: "+strings.TrimSpace(err.Error()))
		return 1
	}
	return 0
}

// Run is the entry point of cmd/funssa.
func Run() {
	os.Exit(Execute(os.Args[1:], DefaultStreams()))
}
