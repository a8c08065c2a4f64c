//go:build !linux || !arm

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"helloclock.dev/input"
	"helloclock.dev/term"
)

// Logs would corrupt the terminal user interface.
var defaultLogFile = filepath.Join(os.TempDir(), "helloclock.log")

func Init(opts options) (*Platform, error) {
	return initTerminal(opts)
}

func initTerminal(opts options, progOpts ...tea.ProgramOption) (*Platform, error) {
	if opts.Board != "" {
		slog.Warn("board profile ignored by the terminal platform", "board", opts.Board)
	}
	keys := make(chan input.Event, 16)
	t := term.New(keys, progOpts...)
	// The terminal accepts output only while it runs.
	ran := make(chan error, 1)
	go func() {
		ran <- t.Run()
	}()
	p := newPlatform(t, t)
	errc := make(chan error, 1)
	go func() {
		err := <-ran
		if err != nil {
			slog.Error("terminal", "error", err)
		}
		errc <- err
		// Without a terminal there is no other way to exit.
		p.pressBack()
	}()
	p.closers = append(p.closers, func() error {
		t.Quit()
		return <-errc
	})
	go func() {
		for {
			select {
			case e := <-keys:
				select {
				case p.gui.Input() <- e:
				case <-p.ctx.Done():
					return
				}
			case <-p.ctx.Done():
				return
			}
		}
	}()
	if err := p.openClock(opts.RTC); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}
