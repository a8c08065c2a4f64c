// command helloclock shows a greeting and the time of day, blinks the
// indicator LED every second and exits when Back is pressed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"helloclock.dev/app"
)

// Version is set by the Go linker with -ldflags='-X main.Version=...'.
var Version string

type options struct {
	LogLevel string
	LogFile  string
	Console  string
	Board    string
	RTC      string
}

func main() {
	var (
		opts   options
		status int
	)
	cmd := &cobra.Command{
		Use:           "helloclock",
		Short:         "Greeting and clock for small displays",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := run(opts)
			status = s
			return err
		},
	}
	cmd.Version = Version
	if cmd.Version == "" {
		cmd.Version = "devel"
	}
	f := cmd.Flags()
	f.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&opts.LogFile, "log-file", "", "write logs to file")
	f.StringVar(&opts.Console, "console", "", "write logs to serial console device")
	f.StringVar(&opts.Board, "board", "", "board profile YAML (default: Waveshare 1.3\" HAT)")
	f.StringVar(&opts.RTC, "rtc", "", "real-time clock device (default: system clock)")

	if err := fang.Execute(context.Background(), cmd); err != nil {
		fmt.Fprintf(os.Stderr, "helloclock: %v\n", err)
		os.Exit(2)
	}
	os.Exit(status)
}

func run(opts options) (int, error) {
	closeLog, err := setupLogging(opts)
	if err != nil {
		return 0, err
	}
	defer closeLog()
	p, err := Init(opts)
	if err != nil {
		return 0, err
	}
	slog.Info("starting", "version", Version)
	status := app.Main(p)
	if err := p.Close(); err != nil {
		slog.Error("platform close", "error", err)
	}
	slog.Info("exited", "status", status)
	return status, nil
}
