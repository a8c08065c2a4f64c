package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/tarm/serial"
)

const consoleBaud = 115200

// setupLogging installs the default logger. Logs go to the serial
// console if set, then the log file, then the platform default.
func setupLogging(opts options) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var (
		w       io.Writer
		closer  io.Closer
		noColor bool
	)
	switch {
	case opts.Console != "":
		port, err := serial.OpenPort(&serial.Config{Name: opts.Console, Baud: consoleBaud})
		if err != nil {
			return nil, fmt.Errorf("console: %w", err)
		}
		w, closer = port, port
	case opts.LogFile != "" || defaultLogFile != "":
		path := opts.LogFile
		if path == "" {
			path = defaultLogFile
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		w, closer, noColor = f, f, true
	default:
		w = os.Stderr
	}
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})))
	return func() {
		if closer != nil {
			closer.Close()
		}
	}, nil
}
