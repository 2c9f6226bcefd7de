// Package cmd provides the command-line interface for the fecho application.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/connorhough/fecho/internal/config"
	"github.com/connorhough/fecho/internal/fecho"
	"github.com/connorhough/fecho/internal/iostreams"
	"github.com/connorhough/fecho/internal/logging"
	"github.com/connorhough/fecho/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute builds the root command on the process streams and runs it.
// This is called by main.go.
func Execute(ctx context.Context) error {
	return NewRootCmd(iostreams.System(), afero.NewOsFs()).ExecuteContext(ctx)
}

type options struct {
	cfgFile    string
	logLevel   string
	initConfig bool

	files      bool
	count      int
	top        int
	separator  separatorValue
	continuous bool
}

// NewRootCmd creates and returns the root command for fecho
func NewRootCmd(streams *iostreams.IOStreams, fs afero.Fs) *cobra.Command {
	opts := &options{separator: separatorValue{sep: fecho.NoSeparator()}}

	rootCmd := &cobra.Command{
		Use:   "fecho [input...]",
		Short: "Echo text, files or piped input multiple times",
		Long: `A simple tool to echo multiple files, text, or piped values.

Without --file the inputs are joined with spaces and printed. With --file each
input is a file whose lines are printed. With no inputs, standard input is read.`,
		Example: `  fecho -c 3 hello world
  fecho -f -t 5 --separator=--- a.txt b.txt
  seq 10 | fecho -c 2 -s
  tail -f app.log | fecho --continuous -t 20 --separator=====`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.String(),
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, streams, fs, opts, args)
		},
	}
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default locations: $XDG_CONFIG_HOME/fecho/config.yaml, ~/.config/fecho/config.yaml, or ~/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "diagnostics written to stderr: debug, info, warn or error (default warn)")

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.files, "file", "f", false, "[input...] becomes a list of files you want to echo")
	flags.IntVarP(&opts.count, "count", "c", 1, "quantity of repetitions")
	flags.IntVarP(&opts.top, "top", "t", 0, "display only the first TOP lines of each echo")
	sepFlag := flags.VarPF(&opts.separator, "separator", "s", "print a separator between repetitions, a blank line if no text is given")
	sepFlag.NoOptDefVal = defaultSeparatorToken
	flags.BoolVar(&opts.continuous, "continuous", false, "stream standard input, printing the separator after every TOP lines")
	flags.BoolVar(&opts.initConfig, "init-config", false, "write a commented config template and exit")

	return rootCmd
}

func run(cmd *cobra.Command, streams *iostreams.IOStreams, fs afero.Fs, opts *options, args []string) error {
	if opts.initConfig {
		return writeConfigTemplate(cmd.OutOrStdout(), fs, opts.cfgFile)
	}

	v := config.New()
	if err := config.Load(v, fs, opts.cfgFile); err != nil {
		return err
	}

	settings, err := config.Resolve(v)
	if err != nil {
		return err
	}
	settings.ApplyFlags(opts.overrides(cmd.Flags()))

	if _, err := logging.Setup(streams.ErrOut, settings.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", fecho.ErrInvalidConfig, err)
	}
	slog.Debug("resolved settings",
		"config", v.ConfigFileUsed(),
		"count", settings.Count,
		"top", settings.Top,
		"separator", settings.Separator,
	)

	if cmd.Flags().Changed("top") && opts.top < 1 {
		return fmt.Errorf("%w: --top must be a positive integer, got %d", fecho.ErrInvalidConfig, opts.top)
	}

	engine := &fecho.Engine{
		Streams: streams,
		FS:      fs,
		Usage: func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s\n\n%s", cmd.Long, cmd.UsageString())
			return err
		},
	}

	return engine.Run(cmd.Context(), settings.RunConfig(args, opts.files, opts.continuous))
}

// overrides collects the flags the user actually passed.
func (o *options) overrides(flags *pflag.FlagSet) config.Flags {
	var f config.Flags
	if flags.Changed("count") {
		f.Count = &o.count
	}
	if flags.Changed("top") {
		f.Top = &o.top
	}
	if flags.Changed("separator") {
		f.Separator = &o.separator.sep
	}
	if flags.Changed("log-level") {
		f.LogLevel = &o.logLevel
	}
	return f
}

func writeConfigTemplate(out io.Writer, fs afero.Fs, cfgFile string) error {
	path := cfgFile
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	created, err := config.EnsureConfigExists(fs, path)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Wrote config template to %s\n", path)
	} else {
		fmt.Fprintf(out, "Config already exists at %s\n", path)
	}
	return nil
}
