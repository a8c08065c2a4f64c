//go:build linux

package rtc

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// Device reads a Linux RTC character device. The RTC is assumed to keep
// UTC, as hwclock does by default.
type Device struct {
	mu sync.Mutex
	f  *os.File
}

func Open(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rtc: %w", err)
	}
	d := &Device{f: f}
	if _, err := d.read(); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *Device) read() (time.Time, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rt, err := unix.IoctlGetRTCTime(int(d.f.Fd()))
	if err != nil {
		return time.Time{}, fmt.Errorf("rtc: RTC_RD_TIME: %w", err)
	}
	return fromRTC(rt), nil
}

func fromRTC(rt *unix.RTCTime) time.Time {
	return time.Date(int(rt.Year)+1900, time.Month(rt.Mon+1), int(rt.Mday),
		int(rt.Hour), int(rt.Min), int(rt.Sec), 0, time.UTC)
}

// Now returns the RTC time in the local zone, falling back to the
// system clock if the device can't be read.
func (d *Device) Now() time.Time {
	t, err := d.read()
	if err != nil {
		return time.Now()
	}
	return t.Local()
}

func (d *Device) Close() error {
	return d.f.Close()
}
