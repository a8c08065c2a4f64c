// package rtc provides the wall-clock time source.
package rtc

import "time"

type Clock interface {
	Now() time.Time
}

// System is the host clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Timestamp returns the number of seconds since the epoch of the local
// wall time of t, the way a battery-backed RTC keeping local time counts.
func Timestamp(t time.Time) uint32 {
	_, off := t.Zone()
	return uint32(t.Unix() + int64(off))
}
