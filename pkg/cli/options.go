package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/funvibe/funssa/internal/config"
)

// Streams are the command's standard input and outputs.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStreams uses the process's standard streams.
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Options holds the flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	NoCache    bool
	NoColor    bool

	// Rewrite settings; empty or false means "use the config file".
	Func       string
	Prefix     string
	Unroll     bool
	DumpSource bool
	DumpTree   bool
	Jobs       int
}

func (o *Options) installFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "Path to funssa.yaml (default: searched upward from the working directory)")
	flags.StringVarP(&o.LogLevel, "log-level", "l", "", `Set the logging level ("debug"|"info"|"warn"|"error")`)
	flags.BoolVar(&o.NoCache, "no-cache", false, "Do not read or write the transform cache")
	flags.BoolVar(&o.NoColor, "no-color", false, "Never colour diagnostics")
}

func (o *Options) installRewriteFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.Func, "func", "f", "", "Function to convert (default: the first def in each file)")
	flags.StringVarP(&o.Prefix, "prefix", "p", "", "Seed for return value names")
	flags.BoolVar(&o.Unroll, "unroll", false, "Unroll loops over unroll(...) before converting")
	flags.BoolVar(&o.DumpSource, "dump-source", false, "Print the function before and after conversion")
	flags.BoolVar(&o.DumpTree, "dump-tree", false, "Print the syntax tree before and after conversion")
	flags.IntVarP(&o.Jobs, "jobs", "j", 4, "Files converted in parallel")
}

// loadConfig finds and reads funssa.yaml, then applies flag overrides.
func (o *Options) loadConfig() (*config.Config, error) {
	path := o.ConfigPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Prefix != "" {
		if !config.IsIdentifier(o.Prefix) {
			return nil, fmt.Errorf("--prefix %q is not a valid identifier", o.Prefix)
		}
		cfg.ReturnPrefix = o.Prefix
	}
	if o.Unroll {
		cfg.Unroll = true
	}
	if o.NoCache {
		cfg.Cache.Disabled = true
	}
	if o.DumpSource {
		cfg.Debug.DumpSource = true
	}
	if o.DumpTree {
		cfg.Debug.DumpTree = true
	}
	return cfg, nil
}

// newLogger returns a logger writing to w at the given level.
func newLogger(w io.Writer, level string) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	lvl := logrus.WarnLevel
	if level != "" {
		var err error
		if lvl, err = logrus.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("unable to parse logging level: %s", level)
		}
	}
	logger.SetLevel(lvl)
	return logrus.NewEntry(logger), nil
}
