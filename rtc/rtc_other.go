//go:build !linux

package rtc

import (
	"errors"
	"time"
)

type Device struct{}

func Open(path string) (*Device, error) {
	return nil, errors.New("rtc: not supported on this platform")
}

func (d *Device) Now() time.Time {
	return time.Now()
}

func (d *Device) Close() error {
	return nil
}
