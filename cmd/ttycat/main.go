//go:build linux || darwin

// Command ttycat copies everything a serial device receives to standard output.
//
//	ttycat [flags] <ttydevice> <baudrate>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Station-Manager/ttycat"
	"github.com/spf13/cobra"
)

var errUsage = errors.New("expecting 2 arguments: ttydevice, baudrate")

// allow tests to override the port enumeration
var availablePorts = ttycat.AvailablePorts

type options struct {
	list    bool
	hex     bool
	verbose bool
	logFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status. Every
// failure is reported as a single "<prog>: <reason>" line on stderr.
func run(ctx context.Context, prog string, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(prog, stdout, stderr)
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}
	return 0
}

func newRootCmd(prog string, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   prog + " <ttydevice> <baudrate>",
		Short: "Copy bytes received on a serial tty to standard output",
		Long: "Opens <ttydevice> in raw 8N1 mode at <baudrate> and writes every byte it\n" +
			"receives to standard output until interrupted.\n\n" +
			"Flags must come before <ttydevice>; everything after it is positional.\n\n" +
			"Supported baud rates: " + supportedRates(),
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return nil
			}
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return listPorts(stdout)
			}
			return bridge(cmd.Context(), opts, args[0], args[1], stdout, stderr)
		},
	}
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	// a negative baud rate is an argument, not a shorthand flag
	flags.SetInterspersed(false)
	flags.BoolVar(&opts.list, "list", false, "print the serial ports found on this system and exit")
	flags.BoolVar(&opts.hex, "hex", false, "print each received byte as two hex digits and a space")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log setup and loop activity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this rotated file instead of stderr")

	return cmd
}

func bridge(ctx context.Context, opts *options, device, baud string, stdout, stderr io.Writer) error {
	speed, err := ttycat.ParseBaudRate(baud)
	if err != nil {
		return fmt.Errorf("invalid baud rate: %s", baud)
	}

	logger, closeLog := newLogger(stderr, opts.verbose, opts.logFile)
	defer closeLog()

	port, err := ttycat.Open(device, speed)
	if err != nil {
		logger.Debug().Err(err).Str("device", device).Msg("setup failed")
		return err
	}
	// restores the previous line settings once a signal ends the loop
	defer port.Close()

	logger.Debug().Str("device", device).Str("baud", baud).Msg("device configured")

	var out io.Writer = stdout
	if opts.hex {
		out = ttycat.NewHexWriter(stdout)
	}

	b, err := ttycat.NewBridge(port, out, ttycat.WithLogger(logger))
	if err != nil {
		return err
	}

	err = b.Run(ctx)

	snap := b.Metrics().Snapshot()
	logger.Info().
		Int64("bytes", snap.BytesForwarded).
		Int64("reads", snap.ReadOperations).
		Int64("empty_reads", snap.EmptyReads).
		Dur("uptime", snap.Uptime).
		Float64("bytes_per_second", snap.BytesPerSecond).
		Msg("bridge finished")

	return err
}

func listPorts(stdout io.Writer) error {
	ports, err := availablePorts()
	if err != nil {
		return err
	}
	for _, p := range ports {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

func supportedRates() string {
	rates := ttycat.SupportedBaudRates()
	s := make([]string, 0, len(rates))
	for _, r := range rates {
		s = append(s, fmt.Sprint(r.Int()))
	}
	return strings.Join(s, ", ")
}
