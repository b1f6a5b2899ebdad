package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	bitfind "github.com/bgrewell/bitlocker-find"
	"github.com/bgrewell/bitlocker-find/pkg/consts"
	"github.com/bgrewell/bitlocker-find/pkg/device"
	"github.com/bgrewell/bitlocker-find/pkg/logging"
	"github.com/bgrewell/bitlocker-find/pkg/option"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	verboseFlag  = "verbose"
	noColorFlag  = "no-color"
	progressFlag = "progress"
	platformFlag = "platform"

	envPrefix = "BLFIND_"
)

const longUsage = `Try to find partitions which are BitLocker-encrypted. Each one found is
printed on stdout.

If one or more files are passed as arguments, each file which is a
BitLocker-encrypted volume is printed. Files that do not exist are skipped.

The number of volumes found is returned as the exit status ($? in sh).`

// app holds the state of one command-line invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose  int
	noColor  bool
	progress bool
	platform string

	// sourceFor selects the device source for automatic enumeration.
	sourceFor func(device.Platform) device.Source

	code int
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		sourceFor: device.ForPlatform,
	}
}

// command builds the cobra command for args. Options are only recognised when the first argument
// is one; otherwise every argument is a path, including ones that look like flags.
func (a *app) command(args []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "bitlocker-find [files...]",
		Short:             "Find BitLocker-encrypted volumes",
		Long:              longUsage,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: a.applyEnv,
		RunE:              a.scan,
	}
	cmd.DisableFlagParsing = len(args) > 0 && !strings.HasPrefix(args[0], "-")
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.Flags()
	flags.CountVarP(&a.verbose, verboseFlag, "v", "verbose diagnostics on stderr (-vv for trace)")
	flags.BoolVar(&a.noColor, noColorFlag, false, "disable colored diagnostics")
	flags.BoolVar(&a.progress, progressFlag, false, "show a progress spinner on stderr while scanning")
	flags.StringVar(&a.platform, platformFlag, "", "enumerate devices as on this OS (linux, freebsd, darwin) instead of the running one")
	return cmd
}

// applyEnv reads flag values from BLFIND_ environment variables. Flags given on the command line
// take precedence.
func (a *app) applyEnv(cmd *cobra.Command, _ []string) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		value, present := os.LookupEnv(flagNameToEnvVar(f.Name))
		if !present {
			return
		}
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("invalid value %q for %s: %w", value, flagNameToEnvVar(f.Name), err))
		}
	})
	return errors.Join(errs...)
}

func flagNameToEnvVar(name string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (a *app) logger() *logging.Logger {
	if a.verbose == 0 {
		return logging.DefaultLogger()
	}
	useColor := !a.noColor && isTerminal(a.stderr)
	return logging.NewLogger(logging.NewSimpleLogger(a.stderr, a.verbose, useColor))
}

func (a *app) scan(_ *cobra.Command, args []string) error {
	log := a.logger()
	opts := []option.ScanOption{option.WithLogger(log)}

	finish := func(int) {}
	if a.progress && isTerminal(a.stderr) {
		spinner, err := initializeSpinner(a.stderr)
		if err != nil {
			log.Error(err, "progress updates will be disabled")
		} else {
			opts = append(opts, option.WithScanProgress(createProgressCallback(spinner, a.stderr)))
			finish = func(found int) { stopSpinner(spinner, found) }
		}
	}

	var result bitfind.Result
	if len(args) == 0 {
		platform := device.CurrentPlatform()
		if a.platform != "" {
			platform = device.ParsePlatform(a.platform)
		}
		log.Debug("enumerating devices", "platform", platform)

		var err error
		result, err = bitfind.Find(a.sourceFor(platform), opts...)
		finish(result.Count())
		switch {
		case errors.Is(err, device.ErrUnsupportedPlatform):
			fmt.Fprintln(a.stderr, "OS not supported.")
		case errors.Is(err, device.ErrMalformedPartitions):
			fmt.Fprintln(a.stderr, "Wrong file format.")
			log.Error(err, "cannot enumerate devices")
			a.code = consts.EXIT_MALFORMED_SOURCE
			return nil
		case err != nil:
			fmt.Fprintf(a.stderr, "Cannot enumerate devices: %v\n", err)
			a.code = consts.EXIT_MALFORMED_SOURCE
			return nil
		}
	} else {
		result = bitfind.Scan(args, append(opts, option.WithExistingOnly(true))...)
		finish(result.Count())
	}

	a.code = bitfind.ExitCode(result)
	if result.Count() == 0 {
		fmt.Fprintln(a.stderr, "No BitLocker volume found.")
		return nil
	}
	for _, path := range result.Matched {
		fmt.Fprintln(a.stdout, path)
	}
	return nil
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	cmd := a.command(args)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Usage: %s\n", cmd.UseLine())
		return consts.EXIT_USAGE_ERROR
	}
	return a.code
}
