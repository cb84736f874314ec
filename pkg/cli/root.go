// Package cli wires the colorogram command tree: flag and environment
// configuration, the batch renderer, and the version and update commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Fepozopo/colorogram/pkg/histogram"
	"github.com/Fepozopo/colorogram/pkg/logging"
)

// NewRoot builds the colorogram command. version and gitsha are reported
// by the version subcommand and used by update.
func NewRoot(ctx context.Context, version, gitsha string) *cobra.Command {
	var logFile io.Closer
	closeLog := func() error {
		if logFile == nil {
			return nil
		}
		err := logFile.Close()
		logFile = nil
		return err
	}
	cmd := &cobra.Command{
		Use:   "colorogram [flags] <input>...",
		Short: "render RGB histograms and waveform scopes of images",
		Long: "colorogram counts the red, green and blue values of each input image and\n" +
			"writes a histogram (or a per-column waveform scope) below the source image,\n" +
			"or on its own with --standalone.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := LoadDotEnv(envFile); err != nil {
				return err
			}
			if err := applyEnv(cmd.Flags(), nil); err != nil {
				return err
			}

			logLevel, _ := cmd.Flags().GetString("log-level")
			level, ok := logging.ParseLevel(logLevel)
			logger := logging.Logger(cmd.ErrOrStderr(), false, level)
			if path, _ := cmd.Flags().GetString("log-file"); path != "" {
				logger, logFile = logging.WithFile(cmd.ErrOrStderr(), path, level)
			}
			slog.SetDefault(logger)
			if !ok {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			opts, output, err := optionsFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			opts.PreviewOut = cmd.OutOrStdout()
			jobs, err := Jobs(args, output, opts.Mode)
			if err != nil {
				return err
			}
			slog.DebugContext(ctx, "starting batch", "files", len(jobs), "mode", string(opts.Mode), "scale", opts.Scale.String())
			written, err := Run(ctx, jobs, opts)
			for _, job := range written {
				fmt.Fprintln(cmd.OutOrStdout(), job.Output)
			}
			return err
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, version, gitsha),
		NewUpdateCmd(ctx, version),
	)
	releaseOnError(cmd, closeLog)

	f := cmd.Flags()
	f.StringP("output", "o", "", "output path (only with a single input)")
	f.StringP("mode", "m", string(ModeHistogram), "histogram or waveform")
	f.String("scale", "", "linear or log (default: linear for histogram, log for waveform)")
	f.Int("width", 0, "histogram width in pixels (0 = source width)")
	f.Int("height", 0, "rendered height in pixels (0 = source height / 4)")
	f.Bool("standalone", false, "write only the rendered image, without the source above it")
	f.Bool("label", false, "caption the rendered image")
	f.Int("workers", 0, "waveform worker goroutines (0 = GOMAXPROCS)")
	f.Bool("preview", false, "show the result inline in kitty/iTerm2-compatible terminals")

	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "also write JSON logs to this file (rotated)")
	pf.String("env-file", ".env", "dotenv file with COLOROGRAM_* defaults")
	return cmd
}

// releaseOnError wraps the RunE of c and its subcommands so release also
// runs when they fail; cobra skips the post-run hooks after an error.
func releaseOnError(c *cobra.Command, release func() error) {
	for _, sub := range c.Commands() {
		releaseOnError(sub, release)
	}
	if c.RunE == nil {
		return
	}
	run := c.RunE
	c.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			release()
		}
		return err
	}
}

// optionsFromFlags reads the render options and the explicit output path.
func optionsFromFlags(f *pflag.FlagSet) (Options, string, error) {
	var opts Options
	modeName, _ := f.GetString("mode")
	mode, err := ParseMode(modeName)
	if err != nil {
		return opts, "", err
	}
	opts.Mode = mode
	opts.Scale = mode.DefaultScale()
	if s, _ := f.GetString("scale"); s != "" {
		if opts.Scale, err = histogram.ParseScale(s); err != nil {
			return opts, "", err
		}
	}
	opts.Width, _ = f.GetInt("width")
	opts.Height, _ = f.GetInt("height")
	opts.Workers, _ = f.GetInt("workers")
	if opts.Width < 0 || opts.Height < 0 || opts.Workers < 0 {
		return opts, "", fmt.Errorf("--width, --height and --workers must not be negative")
	}
	opts.Standalone, _ = f.GetBool("standalone")
	opts.Label, _ = f.GetBool("label")
	opts.Preview, _ = f.GetBool("preview")
	output, _ := f.GetString("output")
	return opts, output, nil
}

// NewVersionCmd prints the build version and git sha.
func NewVersionCmd(ctx context.Context, version, gitsha string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "version and git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colorogram %s (%s)\n", version, gitsha)
		},
	}
}
